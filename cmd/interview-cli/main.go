package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/builder"
	"github.com/futig/mock-interview/internal/cli"
	"github.com/futig/mock-interview/internal/entity"
)

func main() {
	var (
		environment   = flag.String("env", "local", "environment name, selects the .env.<env> file")
		role          = flag.String("role", "", "job role; asked interactively when empty")
		interviewType = flag.String("type", string(entity.InterviewTypeTechnical), "interview type: HR or Technical")
		questions     = flag.Int("questions", entity.DefaultQuestions, "number of questions (1-5)")
		minutes       = flag.Int("minutes", entity.DefaultTimeLimit/60, "minutes per question (0-59)")
		seconds       = flag.Int("seconds", entity.DefaultTimeLimit%60, "seconds per question (0-59)")
		format        = flag.String("format", string(entity.FormatPDF), "report format: pdf, docx, markdown or json")
		outDir        = flag.String("out", ".", "directory the report is written to")
	)
	flag.Parse()

	if *minutes < 0 || *minutes > 59 || *seconds < 0 || *seconds > 59 {
		log.Fatal("minutes and seconds must be between 0 and 59")
	}
	reportFormat := entity.ResultFormat(*format)
	if !reportFormat.IsValid() {
		log.Fatalf("unknown report format %q", *format)
	}

	app, err := builder.BuildCLI(*environment, os.Stdin, os.Stdout, cli.Options{
		Format:    reportFormat,
		OutputDir: *outDir,
	})
	if err != nil {
		log.Fatal("Failed to build terminal client:", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := entity.InterviewConfig{
		JobRole:         *role,
		InterviewType:   entity.InterviewType(*interviewType),
		NumQuestions:    *questions,
		TimePerQuestion: *minutes*60 + *seconds,
	}

	if _, err := app.Terminal.Run(ctx, cfg); err != nil {
		if errors.Is(err, cli.ErrQuit) || errors.Is(err, context.Canceled) {
			return
		}
		app.Logger.Error("interview failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, cli.ClassifyError(err))
		app.Close()
		os.Exit(1)
	}
}
