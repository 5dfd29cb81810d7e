package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch re-reads the config file whenever it changes on disk and
// invokes apply with the freshly unmarshalled configuration. Invalid
// edits are reported through onError and the previous values stay live.
func Watch(apply func(*Config), onError func(error)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg := DefaultConfig()
		if err := viper.Unmarshal(cfg); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		apply(cfg)
	})
	viper.WatchConfig()
}
