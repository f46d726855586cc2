// Package config provides configuration parsing for weft projects.
//
// The configuration is stored in weft.json (or weft.yaml) at the project
// root. This package handles loading, saving and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "scheduler": {
//	    "fps": 60,
//	    "yieldThreshold": "1ms"
//	  },
//	  "dev": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "app": "playlist"
//	  },
//	  "metrics": {"enabled": true, "namespace": "weft"},
//	  "tracing": {"enabled": false},
//	  "snapshot": {
//	    "backend": "bolt",
//	    "path": "weft-snapshots.db"
//	  },
//	  "log": {"level": "debug"}
//	}
//
// The same structure may be written as YAML.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Dev.Port)
package config
