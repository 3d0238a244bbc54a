package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	maxRenders := flag.Int("max-renders", server.DefaultMaxRenders, "Renders allowed to run at once; further requests wait")
	flag.Parse()

	webServer := server.NewServer(*port, *maxRenders)

	log.Printf("Sphere Raytracer Web Server (%d concurrent renders)", *maxRenders)
	log.Printf("Scenes: http://localhost:%d/api/scenes", *port)
	log.Printf("Render: http://localhost:%d/api/render?scene=default&width=200&samples=10", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
