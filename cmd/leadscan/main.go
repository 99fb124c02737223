// leadscan scores a vendor CSV file from the command line and prints the
// fraud analysis report. With a database configured the batch is persisted
// and folded into the vendor's history; in offline mode nothing leaves the
// process.
//
// The exit code reflects the refund determination so shell pipelines can
// branch on it: 0 no refund, 1 partial refund, 2 full refund.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/usecase"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/config"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/messaging"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/postgres"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/validation"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/ingestion"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/report"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/observability"
	pgutil "github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/postgres"
)

const (
	exitNoRefund      = 0
	exitPartialRefund = 1
	exitFullRefund    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		vendor  = flag.String("vendor", "", "vendor name the batch came from (required)")
		cost    = flag.String("cost", "0", "cost per lead in dollars")
		batchID = flag.String("batch-id", "", "batch identifier (defaults to the file name plus a timestamp)")
		offline = flag.Bool("offline", false, "skip database, events and network validation")
		workers = flag.Int("workers", 8, "concurrent lead scoring workers")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <leads.csv>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *vendor == "" {
		flag.Usage()
		return exitNoRefund
	}
	inputFile := flag.Arg(0)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitNoRefund
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "text",
	})

	costPerLead, err := decimal.NewFromString(*cost)
	if err != nil || costPerLead.IsNegative() {
		fmt.Fprintf(os.Stderr, "invalid -cost %q\n", *cost)
		return exitNoRefund
	}

	f, err := os.Open(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open %s: %v\n", inputFile, err)
		return exitNoRefund
	}
	leads, err := ingestion.ParseCSV(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not parse %s: %v\n", inputFile, err)
		return exitNoRefund
	}

	identifier := *batchID
	if identifier == "" {
		base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		identifier = fmt.Sprintf("%s-%s", base, time.Now().UTC().Format("20060102T150405"))
	}

	// Storage and events. Offline mode keeps everything in process.
	var (
		batches   port.BatchRepository  = memoryBatchRepository{}
		vendors   port.VendorRepository = memoryVendorRepository{}
		blacklist port.BlacklistRepository
		publisher port.EventPublisher = messaging.NoopPublisher{}
	)
	blacklist = memoryBlacklistRepository{}

	if !*offline {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := pgutil.NewPool(dbCtx, cfg.DatabaseURL, pgutil.PoolConfig{})
		dbCancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not connect to database: %v (use -offline to skip)\n", err)
			return exitNoRefund
		}
		defer pool.Close()
		if err := pgutil.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			fmt.Fprintf(os.Stderr, "could not run migrations: %v\n", err)
			return exitNoRefund
		}
		batches = postgres.NewBatchRepository(pool)
		vendors = postgres.NewVendorRepository(pool)
		blacklist = postgres.NewBlacklistRepository(pool)
	}

	validators := usecase.Validators{
		Phone: validation.NewLocalPhoneValidator(cfg.Rules.Geographic.ExpectedCountry),
	}
	if !*offline {
		if emailValidator, err := validation.NewDNSEmailValidator(time.Duration(cfg.DNSTimeoutSecs) * time.Second); err == nil {
			validators.Email = emailValidator
		}
		if cfg.IPLookupURL != "" {
			validators.IP = validation.NewHTTPIPValidator(cfg.IPLookupURL, cfg.IPLookupRPS)
		}
	}

	scoreBatch := usecase.NewScoreBatch(
		batches, vendors, blacklist, publisher,
		validators, cfg.Rules, *workers, logger,
	)

	fmt.Printf("Scoring %d leads from %s for vendor %q...\n\n", len(leads), inputFile, *vendor)

	result, err := scoreBatch.Execute(ctx, dto.ScoreBatchRequest{
		VendorName:      *vendor,
		BatchIdentifier: identifier,
		InputFilename:   filepath.Base(inputFile),
		CostPerLead:     costPerLead,
		Leads:           leads,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scoring failed: %v\n", err)
		return exitNoRefund
	}

	writer := report.NewWriter(cfg.Rules.Refund)
	if err := writer.Write(os.Stdout, result); err != nil {
		fmt.Fprintf(os.Stderr, "could not write report: %v\n", err)
	}

	// A text copy next to the input file, matching <name>_fraud_report.txt.
	reportPath := strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + "_fraud_report.txt"
	if rf, err := os.Create(reportPath); err == nil {
		if err := writer.Write(rf, result); err == nil {
			fmt.Printf("\nReport saved to %s\n", reportPath)
		}
		rf.Close()
	}

	switch result.RefundStatus {
	case "FULL":
		return exitFullRefund
	case "PARTIAL":
		return exitPartialRefund
	default:
		return exitNoRefund
	}
}

// In-process repository stand-ins for offline runs. Lookups miss and saves
// vanish, which is all a single-shot CLI scoring pass needs.

type memoryBatchRepository struct{}

func (memoryBatchRepository) Save(context.Context, *model.BatchResult) error { return nil }
func (memoryBatchRepository) FindByID(context.Context, uuid.UUID) (*model.BatchResult, error) {
	return nil, port.ErrNotFound
}
func (memoryBatchRepository) FindByIdentifier(context.Context, string) (*model.BatchResult, error) {
	return nil, port.ErrNotFound
}
func (memoryBatchRepository) ListByVendor(context.Context, string, int) ([]*model.BatchResult, error) {
	return nil, nil
}

type memoryVendorRepository struct{}

func (memoryVendorRepository) Save(context.Context, *model.VendorProfile) error { return nil }
func (memoryVendorRepository) FindByID(context.Context, uuid.UUID) (*model.VendorProfile, error) {
	return nil, port.ErrNotFound
}
func (memoryVendorRepository) FindByName(context.Context, string) (*model.VendorProfile, error) {
	return nil, port.ErrNotFound
}
func (memoryVendorRepository) List(context.Context) ([]*model.VendorProfile, error) {
	return nil, nil
}

type memoryBlacklistRepository struct{}

func (memoryBlacklistRepository) FindValues(context.Context, string, []string) (map[string]*model.BlacklistEntry, error) {
	return map[string]*model.BlacklistEntry{}, nil
}
func (memoryBlacklistRepository) Upsert(context.Context, []*model.BlacklistEntry) error { return nil }
