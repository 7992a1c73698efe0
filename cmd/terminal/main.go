package main

import (
	"embed"
	"errors"
	"flag"
	"image"
	"io/fs"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/younwookim/fbcterm/internal/application/app"
	"github.com/younwookim/fbcterm/internal/application/replay"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/system"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Load configs from DIR instead of the embedded set")
	assetsDir := flag.String("assets", "", "Override the assets root")
	windowed := flag.Bool("windowed", false, "Start in a window even if the config asks for fullscreen")
	noLock := flag.Bool("nolock", false, "Go from the splash straight to the menu")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record session.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded session")
	flag.Parse()

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	cfg, err := loader.LoadTerminal()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *assetsDir != "" {
		cfg.Paths.Assets = *assetsDir
	}
	if *windowed {
		cfg.Display.Fullscreen = false
	}
	if *noLock {
		cfg.Lock.Enabled = false
	}

	in, rec, err := newInput(*recordFlag, *replayFlag, *seed)
	if err != nil {
		log.Fatalf("Failed to set up input: %v", err)
	}

	audioCtx := audio.NewContext(sound.SampleRate)
	mixer := sound.NewMixer(audioCtx, nil)
	if err := mixer.LoadKeyClick(cfg.Asset(cfg.Paths.KeySound)); err != nil {
		log.Printf("[audio] key click: %v", err)
	}

	faces, err := assets.NewFaces()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	lib := assets.NewLibrary(audioCtx,
		cfg.Asset(cfg.Paths.Logo), cfg.Asset(cfg.Paths.Icon), cfg.Asset(cfg.Paths.AhtiImage))

	terminal := app.New(app.Options{
		Config:  cfg,
		Faces:   faces,
		Library: lib,
		Audio:   mixer,
		Input:   in.input,
		Rand:    rand.New(rand.NewSource(in.seed)),
		Scenes:  registry(loader, cfg),
		Start:   scene.Splash,
	})

	// Set up ebiten
	d := cfg.Display
	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetTPS(d.Framerate)
	ebiten.SetFullscreen(d.Fullscreen)
	if icon, err := assets.DecodeImage(cfg.Asset(cfg.Paths.Icon)); err == nil {
		ebiten.SetWindowIcon([]image.Image{icon})
	}

	err = ebiten.RunGame(terminal)
	terminal.Shutdown()
	if rec != nil {
		if err := rec.Save(*recordFlag); err != nil {
			log.Printf("[replay] %v", err)
		} else {
			log.Printf("[replay] saved %d frames to %s", rec.FrameCount(), *recordFlag)
		}
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded set when dir is
// empty.
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

type inputSetup struct {
	input app.Input
	seed  int64
}

// newInput picks the keyboard, a recorder wrapping it, or a replay. A
// replay takes its seed from the recording.
func newInput(recordPath, replayPath string, seed int64) (inputSetup, *replay.Recorder, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if replayPath != "" {
		data, err := replay.Load(replayPath)
		if err != nil {
			return inputSetup{}, nil, err
		}
		p, err := replay.NewPlayer(*data)
		if err != nil {
			return inputSetup{}, nil, err
		}
		log.Printf("[replay] %d frames from %s", p.TotalFrames(), replayPath)
		return inputSetup{input: p, seed: p.Seed()}, nil, nil
	}

	keys := system.NewInputSystem()
	if recordPath == "" {
		return inputSetup{input: keys, seed: seed}, nil, nil
	}
	rec := replay.NewRecorder(keys, seed)
	return inputSetup{input: rec, seed: seed}, rec, nil
}
