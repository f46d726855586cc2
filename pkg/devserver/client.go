package devserver

// clientScript keeps the page in sync with the server. It replaces the root
// markup on every html message and forwards events from elements carrying
// render.IDAttr.
const clientScript = `
(function() {
    'use strict';

    var root = document.getElementById('weft-root');
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            console.log('[weft] connected');
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'html':
                    root.innerHTML = msg.html;
                    break;
                case 'error':
                    console.error('[weft]', msg.code || '', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function forward(e) {
        var el = e.target.closest('[data-wid]');
        while (el) {
            var events = (el.getAttribute('data-on') || '').split(' ');
            if (events.indexOf(e.type) >= 0) {
                break;
            }
            el = el.parentElement && el.parentElement.closest('[data-wid]');
        }
        if (!el || !ws || ws.readyState !== WebSocket.OPEN) {
            return;
        }
        if (e.type === 'submit') {
            e.preventDefault();
        }
        ws.send(JSON.stringify({
            type: 'event',
            target: parseInt(el.getAttribute('data-wid'), 10),
            event: e.type,
            value: e.target.value !== undefined ? String(e.target.value) : ''
        }));
    }

    ['click', 'dblclick', 'input', 'change', 'submit', 'keydown', 'ended'].forEach(function(type) {
        root.addEventListener(type, forward, true);
    });

    connect();
})();
`
