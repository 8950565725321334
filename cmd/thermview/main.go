// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermview serves live false-color video from an MLX90640 thermal array,
// optionally fused with a visible-light camera, over HTTP.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/maruel/interrupt"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"

	"github.com/maruel/go-thermal/fuse"
	"github.com/maruel/go-thermal/raw"
	"github.com/maruel/go-thermal/rgb"
	"github.com/maruel/go-thermal/sensor"
	"github.com/maruel/go-thermal/sensortest"
	"github.com/maruel/go-thermal/thermal"
)

// state is the most recent processed output, shared with the HTTP handlers.
type state struct {
	lock    sync.Mutex
	Thermal *rgb.Image
	Fused   *rgb.Image
	Stats   thermal.Stats
	Acq     sensor.Stats
}

var currentState state

var Config = struct {
	Port   int
	Factor int
	Alpha  float64
	CFA    string
}{Port: 8010, Factor: 6, Alpha: 0.5, CFA: "RGGB"}

func parseCFA(s string) (raw.CFA, error) {
	for _, c := range []raw.CFA{raw.RGGB, raw.BGGR, raw.GRBG, raw.GBRG} {
		if s == c.String() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown CFA pattern %q", s)
}

// loop acquires, processes and publishes frames until interrupted.
//
// One iteration: block on the thermal frame, snapshot the settings, render,
// then decode and fuse the camera frame if one is configured. If processing
// outlasts the sensor period the next frame is simply late; nothing queues.
func loop(therm sensor.Thermal, cam sensor.Camera, cfa raw.CFA, settings *thermal.Settings, srv *webServer) {
	for !interrupt.IsSet() {
		samples, rows, cols, err := therm.NextFrame()
		if err != nil {
			log.Printf("thermal acquisition: %s", err)
			time.Sleep(time.Second)
			continue
		}
		snap := settings.Snapshot()
		img, stats, err := thermal.Render(samples, rows, cols, snap)
		if err != nil {
			log.Printf("render: %s", err)
			continue
		}
		var fused *rgb.Image
		if cam != nil {
			if buf, w, h, err := cam.NextRaw(); err != nil {
				log.Printf("camera acquisition: %s", err)
			} else if visible, err := raw.Decode(cam.Format(), cfa, buf, w, h); err != nil {
				log.Printf("camera decode: %s", err)
			} else {
				switch snap.Mode {
				case thermal.VisibleOnly:
					fused = visible
				case thermal.ThermalOnly:
					fused = img
				default:
					fused = fuse.Blend(visible, img, snap.Alpha)
				}
			}
		}
		currentState.lock.Lock()
		currentState.Thermal = img
		if fused != nil {
			currentState.Fused = fused
		}
		currentState.Stats = stats
		currentState.Acq = therm.Stats()
		currentState.lock.Unlock()
		srv.AddImg(img)
	}
}

func mainImpl() error {
	port := flag.Int("port", 0, "http port to listen on")
	fake := flag.Bool("fake", false, "use a simulated thermal source")
	camera := flag.Bool("camera", false, "fuse a (simulated) visible-light camera")
	i2cName := flag.String("i2c", "", "i²c bus to use")
	i2cAddr := flag.Int("i2caddr", 0, "i²c device address, 0 for the default")
	factor := flag.Int("factor", 0, "upscaling factor")
	noscale := flag.Bool("noscale", false, "deactivate autoscale, use the manual bounds")
	alpha := flag.Float64("alpha", -1, "thermal weight of the fused frame")
	cpuprofile := flag.String("cpuprofile", "", "dump CPU profile in file")
	writeConfig := flag.Bool("writeConfig", false, "write the default config file and exit")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if len(flag.Args()) != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return err
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	usr, _ := user.Current()
	configDir := filepath.Join(usr.HomeDir, ".config", "thermview")
	configPath := filepath.Join(configDir, "thermview.json")
	if f, err := os.Open(configPath); err == nil {
		err = json.NewDecoder(f).Decode(&Config)
		f.Close()
		if err != nil {
			return err
		}
	}
	if *writeConfig {
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return err
		}
		data, err := json.MarshalIndent(&Config, "", "  ")
		if err != nil {
			return err
		}
		return ioutil.WriteFile(configPath, append(data, '\n'), 0600)
	}
	// Flags override the config file.
	if *port == 0 {
		*port = Config.Port
	}
	if *factor == 0 {
		*factor = Config.Factor
	}
	if *alpha < 0 {
		*alpha = Config.Alpha
	}
	cfa, err := parseCFA(Config.CFA)
	if err != nil {
		return err
	}

	interrupt.HandleCtrlC()

	var therm sensor.Thermal
	if *fake {
		therm = sensortest.NewThermal()
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		bus, err := i2creg.Open(*i2cName)
		if err != nil {
			return err
		}
		defer bus.Close()
		therm, err = sensor.NewMLX90640(bus, uint16(*i2cAddr))
		if err != nil {
			return fmt.Errorf("%s\nIf testing without hardware, use -fake to simulate a sensor", err)
		}
	}
	defer therm.Close()

	var cam sensor.Camera
	if *camera {
		cam = sensortest.NewCamera(320, 240)
		defer cam.Close()
	}

	settings := thermal.NewSettings(*factor)
	if *noscale {
		settings.ToggleAutoscale()
	}
	settings.SetAlpha(*alpha)

	srv := startWebServer(*port, settings)
	go loop(therm, cam, cfa, settings, srv)
	go func() {
		if err := watchFile(); err != nil {
			log.Printf("watch: %s", err)
		}
		interrupt.Set()
	}()

	for !interrupt.IsSet() {
		s := therm.Stats()
		fmt.Printf("\r%d frames %d waits %d fails", s.GoodFrames, s.NotReady, s.TransferFails)
		time.Sleep(time.Second)
	}
	fmt.Print("\n")
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermview: %s.\n", err)
		os.Exit(1)
	}
}
