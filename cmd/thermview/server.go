// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/maruel/interrupt"
	"github.com/maruel/serve-dir/loghttp"
	"golang.org/x/net/websocket"

	"github.com/maruel/go-thermal/rgb"
	"github.com/maruel/go-thermal/thermal"
)

var rootTmpl = template.Must(template.New("root").Parse(`
	<html>
	<head>
		<title>thermview</title>
		<style>
			img.large {
				width: 576; /* Multiple of 32 */
				height: auto;
				image-rendering: pixelated;
			}
		</style>
		<script>
		function reload() {
			var still = document.getElementById("still");
			still.src = "/thermal.png#" + new Date().getTime();
		}
		</script>
	</head>
	<body>
	<a href="/thermal.png"><img class="large" id="still" src="/thermal.png" onload="reload()"></img></a>
	<img src="/legend.png"></img>
	<img src="/fused.png"></img>
	<br>
	Min {{.Stats.Min}} Max {{.Stats.Max}} Mean {{printf "%.2f" .Stats.Mean}}°C
	<br>
	{{.Acq.GoodFrames}} frames {{.Acq.NotReady}} waits {{.Acq.TransferFails}} fails
	</body>
	</html>`))

type webServer struct {
	settings  *thermal.Settings
	cond      sync.Cond
	images    [16]*rgb.Image
	lastIndex int
}

// startWebServer registers the UI, the stills, the websocket stream and the
// settings mutation endpoints, then listens in the background.
func startWebServer(port int, settings *thermal.Settings) *webServer {
	s := &webServer{
		settings:  settings,
		cond:      *sync.NewCond(&sync.Mutex{}),
		lastIndex: -1,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.root)
	mux.HandleFunc("/thermal.png", s.thermalStill)
	mux.HandleFunc("/favicon.ico", s.thermalStill)
	mux.HandleFunc("/fused.png", s.fusedStill)
	mux.HandleFunc("/legend.png", s.legend)
	mux.HandleFunc("/settings/autoscale", s.autoscale)
	mux.HandleFunc("/settings/min/up", s.step(true, true))
	mux.HandleFunc("/settings/min/down", s.step(true, false))
	mux.HandleFunc("/settings/max/up", s.step(false, true))
	mux.HandleFunc("/settings/max/down", s.step(false, false))
	mux.HandleFunc("/settings/mode", s.mode)
	mux.Handle("/stream", websocket.Handler(s.stream))
	fmt.Printf("Listening on %d\n", port)
	go http.ListenAndServe(fmt.Sprintf(":%d", port), &loghttp.Handler{Handler: mux})
	go func() {
		<-interrupt.Channel
		s.cond.Broadcast()
	}()
	return s
}

// AddImg publishes a processed frame to the websocket stream.
func (s *webServer) AddImg(img *rgb.Image) {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.lastIndex = (s.lastIndex + 1) % len(s.images)
	s.images[s.lastIndex] = img
	s.cond.Broadcast()
}

func (s *webServer) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	currentState.lock.Lock()
	defer currentState.lock.Unlock()
	if err := rootTmpl.Execute(w, &currentState); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func servePNG(w http.ResponseWriter, img *rgb.Image) {
	if img == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	if err := png.Encode(w, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *webServer) thermalStill(w http.ResponseWriter, r *http.Request) {
	currentState.lock.Lock()
	img := currentState.Thermal
	currentState.lock.Unlock()
	servePNG(w, img)
}

func (s *webServer) fusedStill(w http.ResponseWriter, r *http.Request) {
	currentState.lock.Lock()
	img := currentState.Fused
	currentState.lock.Unlock()
	servePNG(w, img)
}

func (s *webServer) legend(w http.ResponseWriter, r *http.Request) {
	snap := s.settings.Snapshot()
	servePNG(w, thermal.Legend(snap.Gradient, 100, 10, 240))
}

func (s *webServer) autoscale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	fmt.Fprintf(w, "autoscale: %t\n", s.settings.ToggleAutoscale())
}

func (s *webServer) step(min, up bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		if min {
			fmt.Fprintf(w, "min: %g\n", s.settings.StepManualMin(up))
		} else {
			fmt.Fprintf(w, "max: %g\n", s.settings.StepManualMax(up))
		}
	}
}

func (s *webServer) mode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	switch r.FormValue("mode") {
	case "fused":
		s.settings.SetMode(thermal.Fused)
	case "visible":
		s.settings.SetMode(thermal.VisibleOnly)
	case "thermal":
		s.settings.SetMode(thermal.ThermalOnly)
	default:
		http.Error(w, "mode must be fused, visible or thermal", http.StatusBadRequest)
		return
	}
	if v := r.FormValue("alpha"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.settings.SetAlpha(a)
	}
	fmt.Fprintf(w, "mode: %s\n", s.settings.Snapshot().Mode)
}

// stream pushes every processed frame as a base64 PNG websocket message.
func (s *webServer) stream(w *websocket.Conn) {
	log.Printf("websocket from %s", w.Request().RemoteAddr)
	defer w.Close()
	lastIndex := 0
	buf := &bytes.Buffer{}
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	for !interrupt.IsSet() {
		s.cond.Wait()
		for ; !interrupt.IsSet() && lastIndex != s.lastIndex; lastIndex = (lastIndex + 1) % len(s.images) {
			img := s.images[s.lastIndex]
			s.cond.L.Unlock()
			// Do the actual I/O without the lock.
			encoder := base64.NewEncoder(base64.StdEncoding, buf)
			var err error
			if err = png.Encode(encoder, img); err == nil {
				encoder.Close()
				_, err = w.Write(buf.Bytes())
			}
			buf.Reset()
			s.cond.L.Lock()
			// To break out of the loop, the lock must be held.
			if err != nil {
				log.Printf("websocket err: %s", err)
				return
			}
		}
	}
}
