// Command edh-advisor analyzes Commander decks and recommends cards from a
// local deck corpus.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cturner512/edh-advisor/internal/analysis"
	"github.com/cturner512/edh-advisor/internal/budget"
	"github.com/cturner512/edh-advisor/internal/charts"
	"github.com/cturner512/edh-advisor/internal/config"
	"github.com/cturner512/edh-advisor/internal/deck"
	"github.com/cturner512/edh-advisor/internal/meta"
	"github.com/cturner512/edh-advisor/internal/prices"
	"github.com/cturner512/edh-advisor/internal/recommend"
	"github.com/cturner512/edh-advisor/internal/similarity"
	"github.com/cturner512/edh-advisor/internal/storage"
	"github.com/cturner512/edh-advisor/internal/storage/repository"
	"github.com/cturner512/edh-advisor/internal/synergy"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(cfg, os.Args[2:])
	case "watch":
		runWatch(cfg, os.Args[2:])
	case "recommend":
		runRecommend(cfg, os.Args[2:])
	case "record":
		runRecord(cfg, os.Args[2:])
	case "import-corpus":
		runImportCorpus(cfg, os.Args[2:])
	case "backup":
		runBackup(cfg, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		log.Printf("Unknown command: %s", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("edh-advisor - Commander deck analysis and recommendations")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  edh-advisor analyze -deck <file> [-tier <budget-tier>] [-charts]")
	fmt.Println("  edh-advisor watch -deck <file> [-charts]")
	fmt.Println("  edh-advisor recommend -deck <file> [-player <name>] [-limit <n>]")
	fmt.Println("  edh-advisor record -player <name> -deck <name> -result <win|loss> -turns <n> [-opponents <a,b,c>] [-notes <text>]")
	fmt.Println("  edh-advisor import-corpus <deck-file> [<deck-file> ...]")
	fmt.Println("  edh-advisor backup [-password <pw>] [-dir <path>]")
}

// analysisReport is the combined JSON output of the analyze command.
type analysisReport struct {
	Deck             string                      `json:"deck"`
	Features         deck.FeatureVector          `json:"features"`
	Power            analysis.PowerAssessment    `json:"power"`
	Curve            analysis.CurveReport        `json:"curve"`
	WinConditions    analysis.WinConReport       `json:"win_conditions"`
	Interaction      analysis.InteractionReport  `json:"interaction"`
	SynergyScore     int                         `json:"synergy_score"`
	SynergyPairs     []synergy.Pair              `json:"synergy_pairs,omitempty"`
	Combos           []synergy.ComboMatch        `json:"combos,omitempty"`
	Partners         []synergy.PartnerSuggestion `json:"partner_suggestions,omitempty"`
	Budget           budget.Report               `json:"budget"`
	WinConSuggestion []analysis.WinConSuggestion `json:"wincon_suggestions,omitempty"`
}

func runAnalyze(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	deckPath := fs.String("deck", "", "Path to a deck file (JSON or plain decklist)")
	tier := fs.String("tier", cfg.BudgetTier, "Budget tier: budget, moderate, optimized, nolimit")
	renderCharts := fs.Bool("charts", false, "Write HTML charts to the report directory")
	_ = fs.Parse(args)

	if *deckPath == "" {
		log.Fatal("analyze: -deck is required")
	}

	d, err := deck.LoadFile(*deckPath)
	if err != nil {
		log.Fatalf("Failed to load deck: %v", err)
	}

	writeAnalysis(cfg, d, *tier, *renderCharts)
}

// runWatch renders the analyze report, then re-renders it with freshly
// loaded settings whenever the config file is rewritten, so similarity
// weights and budget tiers can be re-tuned without restarting.
func runWatch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	deckPath := fs.String("deck", "", "Path to a deck file (JSON or plain decklist)")
	renderCharts := fs.Bool("charts", false, "Rewrite HTML charts on every refresh")
	_ = fs.Parse(args)

	if *deckPath == "" {
		log.Fatal("watch: -deck is required")
	}

	d, err := deck.LoadFile(*deckPath)
	if err != nil {
		log.Fatalf("Failed to load deck: %v", err)
	}

	cfgPath, err := config.Path()
	if err != nil {
		log.Fatalf("Failed to resolve config path: %v", err)
	}

	writeAnalysis(cfg, d, cfg.BudgetTier, *renderCharts)
	log.Printf("Watching %s (interrupt to stop)", cfgPath)

	stop := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		close(stop)
	}()

	err = config.Watch(cfgPath, func(fresh *config.Config) {
		log.Print("Config changed, refreshing analysis")
		writeAnalysis(fresh, d, fresh.BudgetTier, *renderCharts)
	}, stop)
	if err != nil {
		log.Fatalf("Config watch failed: %v", err)
	}
}

// writeAnalysis hydrates prices when enabled, prints the combined report
// as JSON and optionally renders the HTML charts.
func writeAnalysis(cfg *config.Config, d deck.Deck, tier string, renderCharts bool) {
	if cfg.Prices.Enabled {
		client := prices.NewClient(cfg.Prices.UserAgent)
		skipped, err := client.HydratePrices(context.Background(), &d)
		if err != nil {
			log.Fatalf("Failed to fetch prices: %v", err)
		}
		if skipped > 0 {
			log.Printf("Warning: %d cards left unpriced", skipped)
		}
	}

	report := analysisReport{
		Deck:             d.Name,
		Features:         deck.Extract(d),
		Power:            analysis.AssessPower(d),
		Curve:            analysis.AnalyzeCurve(d),
		WinConditions:    analysis.DetectWinConditions(d),
		Interaction:      analysis.AnalyzeInteraction(d),
		SynergyScore:     synergy.Score(d),
		SynergyPairs:     synergy.DetectPairs(d),
		Combos:           synergy.DetectCombos(d),
		Partners:         synergy.SuggestPartners(d, 10),
		Budget:           budget.Analyze(d, tier),
		WinConSuggestion: analysis.SuggestWinConditions(d),
	}

	printJSON(report)

	if renderCharts {
		outDir := cfg.Reports.OutputDir
		if outDir == "" {
			outDir = "."
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			log.Fatalf("Failed to create report directory: %v", err)
		}

		chartCfg := charts.DefaultChartConfig()
		chartCfg.Title = d.Name + " - Mana Curve"
		curvePath := filepath.Join(outDir, slug(d.Name)+"_curve.html")
		if err := charts.RenderCurveChart(report.Curve, chartCfg, curvePath); err != nil {
			log.Fatalf("Failed to render curve chart: %v", err)
		}

		chartCfg.Title = d.Name + " - Price by Type"
		pricePath := filepath.Join(outDir, slug(d.Name)+"_prices.html")
		if err := charts.RenderPriceChart(d, chartCfg, pricePath); err != nil {
			log.Fatalf("Failed to render price chart: %v", err)
		}

		log.Printf("Charts written: %s, %s", curvePath, pricePath)
	}
}

// recommendReport is the combined JSON output of the recommend command.
type recommendReport struct {
	Deck            string                     `json:"deck"`
	Neighbors       []similarity.Result        `json:"neighbors,omitempty"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	CounterTech     []meta.TechSuggestion      `json:"counter_tech,omitempty"`
}

func runRecommend(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	deckPath := fs.String("deck", "", "Path to a deck file (JSON or plain decklist)")
	player := fs.String("player", "", "Player name whose recorded games shape the meta profile")
	limit := fs.Int("limit", 20, "Maximum recommendations to return")
	_ = fs.Parse(args)

	if *deckPath == "" {
		log.Fatal("recommend: -deck is required")
	}

	d, err := deck.LoadFile(*deckPath)
	if err != nil {
		log.Fatalf("Failed to load deck: %v", err)
	}

	db := openDB(cfg)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	corpusRepo := repository.NewCorpusRepository(db.Conn())
	corpus, err := corpusRepo.ListDecks(ctx)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	if len(corpus) == 0 {
		log.Fatal("Corpus is empty; run import-corpus first")
	}

	var profile *meta.Profile
	if *player != "" {
		resultsRepo := repository.NewResultsRepository(db.Conn())
		results, err := resultsRepo.ListByPlayer(ctx, *player)
		if err != nil {
			log.Fatalf("Failed to load game results: %v", err)
		}
		p := meta.BuildProfile(results)
		profile = &p
	}

	engine := similarity.NewEngine(cfg.Similarity)
	agg := recommend.NewAggregator(engine, nil)

	report := recommendReport{
		Deck:            d.Name,
		Neighbors:       engine.Rank(d, corpus, 10),
		Recommendations: agg.Recommend(d, corpus, profile, *limit),
	}
	if profile != nil {
		report.CounterTech = meta.SuggestCounterTech(*profile)
	}

	printJSON(report)
}

func runRecord(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	player := fs.String("player", "", "Player name")
	deckUsed := fs.String("deck", "", "Deck name used in the game")
	result := fs.String("result", "", "Game result: win or loss")
	turns := fs.Int("turns", 0, "Turn the game ended on")
	opponents := fs.String("opponents", "", "Comma-separated opponent commanders")
	notes := fs.String("notes", "", "Free-text game notes")
	_ = fs.Parse(args)

	if *player == "" || *deckUsed == "" || *result == "" {
		log.Fatal("record: -player, -deck and -result are required")
	}
	if *result != "win" && *result != "loss" {
		log.Fatalf("record: invalid result %q (want win or loss)", *result)
	}

	db := openDB(cfg)
	defer func() { _ = db.Close() }()

	gr := meta.GameResult{
		DeckUsed: *deckUsed,
		Result:   *result,
		Turns:    *turns,
		Notes:    *notes,
	}
	if *opponents != "" {
		for _, name := range strings.Split(*opponents, ",") {
			gr.OpponentCommanders = append(gr.OpponentCommanders, strings.TrimSpace(name))
		}
	}

	resultsRepo := repository.NewResultsRepository(db.Conn())
	if err := resultsRepo.Append(context.Background(), *player, gr); err != nil {
		log.Fatalf("Failed to record game: %v", err)
	}

	count, err := resultsRepo.CountByPlayer(context.Background(), *player)
	if err != nil {
		log.Fatalf("Failed to count games: %v", err)
	}
	fmt.Printf("Recorded game %d for %s\n", count, *player)
}

func runImportCorpus(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import-corpus", flag.ExitOnError)
	_ = fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		log.Fatal("import-corpus: at least one deck file is required")
	}

	db := openDB(cfg)
	defer func() { _ = db.Close() }()

	corpusRepo := repository.NewCorpusRepository(db.Conn())
	ctx := context.Background()

	imported := 0
	for _, path := range files {
		d, err := deck.LoadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		if err := corpusRepo.SaveDeck(ctx, d); err != nil {
			log.Fatalf("Failed to save deck %q: %v", d.Name, err)
		}
		imported++
	}

	total, err := corpusRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count corpus: %v", err)
	}
	fmt.Printf("Imported %d decks (corpus now holds %d)\n", imported, total)
}

func runBackup(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	password := fs.String("password", "", "Encrypt the backup with this password")
	dir := fs.String("dir", "", "Backup directory (default: backups next to the database)")
	_ = fs.Parse(args)

	bm := storage.NewBackupManager(dbPath(cfg))
	path, err := bm.Backup(&storage.BackupConfig{
		BackupDir: *dir,
		Password:  *password,
	})
	if err != nil {
		log.Fatalf("Backup failed: %v", err)
	}
	fmt.Printf("Backup written to %s\n", path)
}

// openDB opens the configured database with migrations applied.
func openDB(cfg *config.Config) *storage.DB {
	dbCfg := storage.DefaultConfig(dbPath(cfg))
	dbCfg.AutoMigrate = cfg.Database.AutoMigrate

	db, err := storage.Open(dbCfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

// dbPath resolves the database path, defaulting under the user's home.
func dbPath(cfg *config.Config) string {
	if cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	return filepath.Join(home, ".edh-advisor", "data.db")
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	fmt.Println(string(out))
}

// slug converts a deck name into a file-name friendly token.
func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "deck"
	}
	return b.String()
}
