package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/Bobsaggetismine/BlackQuartz/uci"
)

const (
	engineName   = "BlackQuartz"
	engineAuthor = "BlackQuartz contributors"
)

var (
	versionName = "dev"
	flgBook     string
)

func main() {
	flag.StringVar(&flgBook, "book", "", "path to an opening book file")
	flag.Parse()

	var logger = log.New(os.Stderr, "", log.LstdFlags)
	logger.Println(engineName, "VersionName", versionName, "RuntimeVersion", runtime.Version())

	var protocol = uci.NewProtocol(os.Stdout)
	if flgBook != "" {
		if err := protocol.LoadBook(flgBook); err != nil {
			logger.Println("book load failed:", err)
		}
	}

	protocol.Run(os.Stdin)
}
