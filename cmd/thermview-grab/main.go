// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// thermview-grab captures a single false-color thermal frame as PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io/ioutil"
	"log"
	"os"

	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"

	"github.com/maruel/go-thermal/sensor"
	"github.com/maruel/go-thermal/sensortest"
	"github.com/maruel/go-thermal/thermal"
)

func mainImpl() error {
	fake := flag.Bool("fake", false, "use a simulated thermal source")
	i2cName := flag.String("i2c", "", "i²c bus to use")
	i2cAddr := flag.Int("i2caddr", 0, "i²c device address, 0 for the default")
	factor := flag.Int("factor", 6, "upscaling factor")
	noscale := flag.Bool("noscale", false, "deactivate autoscale, use the manual bounds")
	meta := flag.Bool("meta", false, "print frame statistics")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(ioutil.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 1 {
		return errors.New("supply path to PNG to save")
	}

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

	samples, rows, cols, err := therm.NextFrame()
	if err != nil {
		return err
	}
	settings := thermal.NewSettings(*factor)
	if *noscale {
		settings.ToggleAutoscale()
	}
	img, stats, err := thermal.Render(samples, rows, cols, settings.Snapshot())
	if err != nil {
		return err
	}
	if *meta {
		fmt.Printf("Min:  %s\n", stats.Min)
		fmt.Printf("Max:  %s\n", stats.Max)
		fmt.Printf("Mean: %.2f°C\n", stats.Mean)
	}
	f, err := os.Create(flag.Args()[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nthermview-grab: %s.\n", err)
		os.Exit(1)
	}
}
