package demo

import (
	"errors"
	"log/slog"

	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Song is one playlist entry.
type Song struct {
	ID     int
	Title  string
	Artist string
	Src    string
}

// DefaultSongs is the playlist used when none is given.
var DefaultSongs = []Song{
	{ID: 1, Title: "Intentions", Artist: "Justin Bieber, Quavo", Src: "/music/intentions.mp3"},
	{ID: 2, Title: "Changes", Artist: "Justin Bieber", Src: "/music/changes.mp3"},
	{ID: 3, Title: "ETA", Artist: "Justin Bieber", Src: "/music/eta.mp3"},
}

var errInvalidSource = errors.New("invalid audio source")

// Playlist is a music player. Props:
//
//	songs   []Song       (default DefaultSongs)
//	player  AudioPlayer  (default a MemoryPlayer kept in state)
//
// Switching songs reloads the player from an effect; the previous song is
// paused by the effect's cleanup. A song without a source replaces the
// player with an error message.
func Playlist(props vdom.Props) *vdom.Element {
	songs, _ := props["songs"].([]Song)
	if len(songs) == 0 {
		songs = DefaultSongs
	}
	fallback, _ := fiber.UseState[AudioPlayer](NewMemoryPlayer(nil))
	player, _ := props["player"].(AudioPlayer)
	if player == nil {
		player = fallback
	}

	index, setIndex := fiber.UseState(0)
	playing, setPlaying := fiber.UseState(false)
	loadErr, setLoadErr := fiber.UseState("")

	song := songs[0]
	if index >= 0 && index < len(songs) {
		song = songs[index]
	}

	fiber.UseEffect(func() fiber.Cleanup {
		if song.Src == "" {
			setLoadErr(errInvalidSource.Error())
			setPlaying(false)
			return nil
		}
		player.Pause()
		if err := player.Load(song.Src); err != nil {
			setLoadErr(err.Error())
			setPlaying(false)
			return nil
		}
		if playing {
			if err := player.Play(); err != nil {
				slog.Warn("playback failed", "song", song.Title, "error", err)
				setPlaying(false)
			}
		}
		return func() {
			player.Pause()
			player.Load("")
		}
	}, []any{index, song})

	if loadErr != "" {
		return vdom.Div(vdom.Class("music-player"), "Load error: "+loadErr)
	}

	previous := func() {
		if index > 0 {
			setIndex(index - 1)
		} else {
			setIndex(len(songs) - 1)
		}
	}
	next := func() {
		if index < len(songs)-1 {
			setIndex(index + 1)
		} else {
			setIndex(0)
		}
	}
	toggle := func() {
		if !playing {
			if err := player.Play(); err != nil {
				slog.Warn("playback failed", "song", song.Title, "error", err)
			}
		} else {
			player.Pause()
		}
		setPlaying(!playing)
	}

	return vdom.Div(vdom.Class("music-player"),
		vdom.Div(vdom.Class("song-title"), song.Title),
		vdom.Div(vdom.Class("song-artist"), song.Artist),
		vdom.Div(vdom.Class("controls"),
			vdom.Button(vdom.Class("control-btn"), vdom.OnClick(previous), "⏮"),
			vdom.Button(vdom.Class("control-btn", "play-btn"), vdom.OnClick(toggle), vdom.IfElse(playing, vdom.Text("⏸"), vdom.Text("▶"))),
			vdom.Button(vdom.Class("control-btn"), vdom.OnClick(next), "⏭"),
		),
	)
}
