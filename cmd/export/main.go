// Command export runs the full export pipeline once: read the configured
// store, encode the selected period and write the document through the file
// sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mlefevre/diabecare/internal/config"
	"github.com/mlefevre/diabecare/internal/domain"
	"github.com/mlefevre/diabecare/internal/export"
	"github.com/mlefevre/diabecare/internal/filesink"
	"github.com/mlefevre/diabecare/internal/logger"
	"github.com/mlefevre/diabecare/internal/notify"
	"github.com/mlefevre/diabecare/internal/services"
	"github.com/mlefevre/diabecare/internal/storage"
)

func main() {
	format := flag.String("format", "csv", "export format: csv or json")
	unit := flag.String("unit", "mg/dL", "display unit: mg/dL or mmol/L")
	period := flag.String("period", "all", "period: day, week, month, year or all")
	notes := flag.Bool("notes", true, "include notes")
	status := flag.Bool("status", true, "include status")
	destination := flag.String("dest", "diabecare", "destination hint: diabecare, documents or downloads")
	flag.Parse()

	if err := run(*format, *unit, *period, *notes, *status, *destination); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(format, unit, period string, notes, status bool, destination string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	glycemiaService := services.NewGlycemiaService(store)

	readings, err := glycemiaService.FilterByPeriod(ctx, domain.Period(period))
	if err != nil {
		return err
	}

	opts := export.Options{
		Format:        export.Format(format),
		Unit:          domain.Unit(unit),
		IncludeNotes:  notes,
		IncludeStatus: status,
		Destination:   destination,
	}

	doc, err := export.Encode(readings, opts)
	if err != nil {
		return err
	}

	sink := filesink.NewLocal(cfg.Export.Dir)
	path, err := sink.Write(ctx, doc.Filename, doc.Content, doc.MimeType, opts.Destination)
	if err != nil {
		return err
	}

	toaster := notify.NewLogToaster(logger.GetLogger())
	toaster.Success("Export réussi")

	fmt.Printf("Export écrit: %s\n", path)

	if stats := export.CalculateStatistics(readings, opts.Unit); stats != nil {
		fmt.Printf("  %d mesures du %s au %s\n", stats.Count, stats.Period.From, stats.Period.To)
		fmt.Printf("  min %v / max %v / moyenne %v %s\n", stats.Min, stats.Max, stats.Avg, stats.Unit)
		for category, count := range stats.StatusDistribution {
			fmt.Printf("  %s: %d\n", category, count)
		}
	}
	return nil
}
