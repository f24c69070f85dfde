package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	apihttp "advisory-portal/internal/api/http"
	"advisory-portal/internal/audit"
	"advisory-portal/internal/auth"
	catalog "advisory-portal/internal/catalog/domain"
	catalogmem "advisory-portal/internal/catalog/infrastructure/memory"
	catalogrepo "advisory-portal/internal/catalog/infrastructure/postgres"
	commissionapp "advisory-portal/internal/commission/application"
	"advisory-portal/internal/commission/roletable"
	"advisory-portal/internal/eventing"
	"advisory-portal/internal/observability/metrics"
	payments "advisory-portal/internal/payments/domain"
	paymentsmem "advisory-portal/internal/payments/infrastructure/memory"
	paymentsrepo "advisory-portal/internal/payments/infrastructure/postgres"
	reportapp "advisory-portal/internal/reporting/application"
	reportinterfaces "advisory-portal/internal/reporting/interfaces"
	"advisory-portal/internal/seed"
	tmplapp "advisory-portal/internal/templates/application"
	templates "advisory-portal/internal/templates/domain"
	tmplmem "advisory-portal/internal/templates/infrastructure/memory"
	tmplrepo "advisory-portal/internal/templates/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
	} else {
		logger.Printf("no DATABASE_URL configured, using in-memory stores with seed data")
	}

	metrics.Init(db, logger)

	var productRepo catalog.Repository
	var feed payments.Feed
	var statusUpdater payments.StatusUpdater
	var templateRepo templates.Repository
	var auditor audit.Logger = audit.Nop{}
	var teams auth.TeamMembershipChecker

	if db != nil {
		productRepo = catalogrepo.NewProductRepository(db)
		paymentRepo := paymentsrepo.NewPaymentRepository(db)
		feed = paymentRepo
		statusUpdater = paymentRepo
		templateRepo = tmplrepo.NewTemplateRepository(db)
		auditor = audit.NewRepository(db)
		teams = auth.NewTeamChecker(db)
	} else {
		memProducts := catalogmem.NewProductRepository()
		if err := memProducts.Seed(seed.Products()...); err != nil {
			logger.Fatalf("seed products error: %v", err)
		}
		memPayments := paymentsmem.NewPaymentRepository()
		if err := memPayments.Seed(seed.Payments()...); err != nil {
			logger.Fatalf("seed payments error: %v", err)
		}
		productRepo = memProducts
		feed = memPayments
		statusUpdater = memPayments
		templateRepo = tmplmem.NewTemplateRepository()
	}

	table, err := roletable.Load(cfg.RoleTablePath)
	if err != nil {
		logger.Fatalf("role table error: %v", err)
	}

	bus := eventing.NewBus()
	bus.Subscribe("application.CommissionComputed", func(ctx context.Context, env eventing.Envelope, event any) error {
		computed, ok := event.(commissionapp.CommissionComputed)
		if !ok {
			return nil
		}
		logger.Printf("commission computed: rows=%d pool=%s window=%s..%s",
			computed.Rows, computed.TotalPool,
			computed.From.Format("2006-01-02"), computed.To.Format("2006-01-02"))
		return nil
	})
	bus.Subscribe("application.ReportExported", func(ctx context.Context, env eventing.Envelope, event any) error {
		exported, ok := event.(reportapp.ReportExported)
		if !ok {
			return nil
		}
		logger.Printf("report exported: subject=%s format=%s rows=%d", exported.Subject, exported.Format, exported.Rows)
		return nil
	})
	publisher := &busPublisher{bus: bus, firmID: cfg.FirmID}

	engine, err := commissionapp.NewService(feed, productRepo, table, publisher, nil)
	if err != nil {
		logger.Fatalf("commission service error: %v", err)
	}
	reports, err := reportapp.NewReportService(engine, teams, cfg.ReportMaxRows)
	if err != nil {
		logger.Fatalf("report service error: %v", err)
	}
	exports, err := reportapp.NewExportService(reports, reportinterfaces.ReportRenderer{}, publisher, nil)
	if err != nil {
		logger.Fatalf("export service error: %v", err)
	}
	templateService, err := tmplapp.NewService(templateRepo, nil)
	if err != nil {
		logger.Fatalf("template service error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	templatesHandler := apihttp.NewTemplatesHandler(templateService, auditor)
	paymentsHandler := apihttp.NewPaymentsHandler(feed, statusUpdater, teams, auditor)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/reports", apihttp.NewReportsHandler(reports, auditor))
	mux.Handle("/api/v1/exports/report.csv", apihttp.NewExportHandler(exports, reportapp.FormatCSV, auditor))
	mux.Handle("/api/v1/exports/report.xlsx", apihttp.NewExportHandler(exports, reportapp.FormatXLSX, auditor))
	mux.Handle("/api/v1/exports/report.pdf", apihttp.NewExportHandler(exports, reportapp.FormatPDF, auditor))
	mux.Handle("/api/v1/templates", templatesHandler)
	mux.Handle("/api/v1/templates/", templatesHandler)
	mux.Handle("/api/v1/products", apihttp.NewProductsHandler(productRepo))
	mux.Handle("/api/v1/payments", paymentsHandler)
	mux.Handle("/api/v1/payments/", paymentsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL   string
	HTTPAddr      string
	FirmID        string
	JWTSecret     string
	RoleTablePath string
	ReportMaxRows int
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:   getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:      getenvDefault("HTTP_ADDR", ":8080"),
		FirmID:        getenvDefault("FIRM_ID", "firm-demo"),
		JWTSecret:     getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		RoleTablePath: getenvDefault("ROLE_TABLE_PATH", ""),
		ReportMaxRows: getenvIntDefault("REPORT_MAX_ROWS", 0),
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// busPublisher adapts the in-process bus to the application publisher
// interfaces.
type busPublisher struct {
	bus    *eventing.Bus
	firmID string
}

func (p *busPublisher) PublishCommissionComputed(ctx context.Context, event commissionapp.CommissionComputed) error {
	return p.bus.Publish(ctx, event, eventing.Meta{FirmID: p.firmID, OccurredAt: event.OccurredAt})
}

func (p *busPublisher) PublishReportExported(ctx context.Context, event reportapp.ReportExported) error {
	return p.bus.Publish(ctx, event, eventing.Meta{FirmID: p.firmID, Advisor: event.Subject, OccurredAt: event.OccurredAt})
}
