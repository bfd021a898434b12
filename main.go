package main

import (
	"flag"
	"log"

	"github.com/getforesight/foresight-backend/cmd"
)

// overridden at build time with -ldflags "-X main.apiVersion=vX.Y.Z"
var apiVersion = "dev"

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunServer := flag.Bool("server", false, "Run the API server")
	shouldRunTaskQueue := flag.Bool("worker", false, "Run the task queue worker")
	flag.Parse()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(apiVersion); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(apiVersion); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunTaskQueue {
		if err := cmd.RunTaskQueue(apiVersion); err != nil {
			log.Fatal(err)
		}
	}
}
