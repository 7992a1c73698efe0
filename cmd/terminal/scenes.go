package main

import (
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/audiologs"
	"github.com/younwookim/fbcterm/internal/application/scene/catalog"
	"github.com/younwookim/fbcterm/internal/application/scene/docs"
	"github.com/younwookim/fbcterm/internal/application/scene/hotline"
	"github.com/younwookim/fbcterm/internal/application/scene/lockscreen"
	"github.com/younwookim/fbcterm/internal/application/scene/menu"
	"github.com/younwookim/fbcterm/internal/application/scene/oceanview"
	"github.com/younwookim/fbcterm/internal/application/scene/quarry"
	"github.com/younwookim/fbcterm/internal/application/scene/sectors"
	"github.com/younwookim/fbcterm/internal/application/scene/splash"
	"github.com/younwookim/fbcterm/internal/application/scene/videos"
	"github.com/younwookim/fbcterm/internal/application/system"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/video"
)

// registry wires every top-level screen. The Oceanview map is read from
// loader each time the scene is entered.
func registry(loader *config.Loader, cfg *config.TerminalConfig) scene.Registry {
	return scene.Registry{
		scene.Splash:    splash.New,
		scene.Lock:      lockscreen.New,
		scene.Menu:      menu.New,
		scene.Documents: docs.Factory(docs.DefaultEnv()),
		scene.Videos:    videos.Factory(videos.FFmpeg(video.NewTools())),
		scene.AudioLogs: audiologs.New,
		scene.Altered:   catalog.Factory(catalog.Altered),
		scene.OOP:       catalog.Factory(catalog.OOP),
		scene.Quarry:    quarry.New,
		scene.Sectors:   sectors.New,
		scene.Hotline:   hotline.New,
		scene.Oceanview: oceanview.Factory(mapSource(loader, cfg.Oceanview.Map)),
	}
}

func mapSource(loader *config.Loader, name string) oceanview.Source {
	return func() (*system.Level, error) {
		m, err := loader.LoadMap(name)
		if err != nil {
			return nil, err
		}
		return system.LoadMap(m)
	}
}
