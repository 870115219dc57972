// Command nescore is an illustrative SDL2 presenter around the emulator
// core: it loads a ROM, pumps the core one frame at a time, blits the
// resulting framebuffer into a window, and forwards keyboard state to the
// controller. None of this is part of the core itself (see pkg/core) -
// windowing, input polling, and frame pacing are the caller's concern.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brannigan-dev/nescore/pkg/core"
	"github.com/brannigan-dev/nescore/pkg/input"
	"github.com/brannigan-dev/nescore/pkg/logger"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenWidth  = 256
	screenHeight = 240
	windowScale  = 3
)

func main() {
	logLevel := flag.String("log-level", "info", "log level (off, error, warn, info, debug, trace)")
	logFile := flag.String("log-file", "", "log file path (empty for stdout)")
	cpuLog := flag.Bool("cpu-log", false, "enable CPU instruction logging")
	ppuLog := flag.Bool("ppu-log", false, "enable PPU logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <rom-file>\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nControls: Z=A  X=B  A=Select  S=Start  arrows=D-pad  ESC=quit")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := logger.Initialize(logger.LevelFromString(*logLevel), *logFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.SetCPULogging(*cpuLog)
	logger.SetPPULogging(*ppuLog)

	romPath := flag.Arg(0)
	romData, err := os.ReadFile(romPath)
	if err != nil {
		log.Fatalf("failed to read ROM %q: %v", romPath, err)
	}

	emu := core.New()
	if err := emu.LoadRom(romData); err != nil {
		log.Fatalf("failed to load ROM %q: %v", romPath, err)
	}
	logger.LogInfo("loaded %s", romPath)

	if err := run(emu); err != nil {
		log.Fatal(err)
	}
}

func run(emu *core.Core) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl.Init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"nescore",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		screenWidth*windowScale, screenHeight*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return fmt.Errorf("sdl.CreateWindow: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("sdl.CreateRenderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		screenWidth, screenHeight,
	)
	if err != nil {
		return fmt.Errorf("sdl.CreateTexture: %w", err)
	}
	defer texture.Destroy()

	frameInterval := time.Second / 60
	running := true
	for running {
		frameStart := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE && e.State == sdl.PRESSED {
					running = false
				}
			}
		}

		emu.SetController(pollButtons())
		emu.StepFrame()

		fb := emu.Framebuffer()
		if err := texture.Update(nil, fb, screenWidth*4); err != nil {
			return fmt.Errorf("texture.Update: %w", err)
		}
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		if elapsed := time.Since(frameStart); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}
	return nil
}

func pollButtons() uint8 {
	keys := sdl.GetKeyboardState()
	var b uint8
	set := func(mask uint8, held bool) {
		if held {
			b |= mask
		}
	}
	set(input.ButtonA, keys[sdl.SCANCODE_Z] != 0)
	set(input.ButtonB, keys[sdl.SCANCODE_X] != 0)
	set(input.ButtonSelect, keys[sdl.SCANCODE_A] != 0)
	set(input.ButtonStart, keys[sdl.SCANCODE_S] != 0)
	set(input.ButtonUp, keys[sdl.SCANCODE_UP] != 0)
	set(input.ButtonDown, keys[sdl.SCANCODE_DOWN] != 0)
	set(input.ButtonLeft, keys[sdl.SCANCODE_LEFT] != 0)
	set(input.ButtonRight, keys[sdl.SCANCODE_RIGHT] != 0)
	return b
}
