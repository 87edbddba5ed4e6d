// Package main implements a load generator for the repository stack with
// configurable request rates and realistic library stock scenarios.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/example/shared/core"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/example/shared/shell/config"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

// LoadGenerator fires read and write scenarios against a composed repository
// at a configured request rate.
type LoadGenerator struct {
	repo   repository.Repository[string, core.Book]
	config config.DemoConfig

	// Rate limiting
	ticker   *time.Ticker
	stopChan chan struct{}
	wg       sync.WaitGroup

	// Metrics and state
	requestCount int64
	errorCount   int64
	startTime    time.Time
	mu           sync.RWMutex
}

// NewLoadGenerator creates a new LoadGenerator instance driving the provided
// repository with the given configuration.
func NewLoadGenerator(repo repository.Repository[string, core.Book], cfg config.DemoConfig) *LoadGenerator {
	return &LoadGenerator{
		repo:     repo,
		config:   cfg,
		stopChan: make(chan struct{}),
	}
}

// Seed stores the initial book stock. Identities are deterministic, so reruns
// against a persistent SQLite file update the same books instead of piling up
// new ones.
func (lg *LoadGenerator) Seed(ctx context.Context) error {
	for n := int64(1); n <= int64(lg.config.InitialBooks); n++ {
		if err := lg.repo.AddOrUpdate(ctx, lg.bookForNumber(n)); err != nil {
			return fmt.Errorf("seed book %d: %w", n, err)
		}
	}

	log.Printf("Seeded %d books", lg.config.InitialBooks)
	return nil
}

// Start begins load generation with the configured request rate.
// It runs until the context is cancelled or Stop() is called.
func (lg *LoadGenerator) Start(ctx context.Context) error {
	lg.mu.Lock()
	lg.startTime = time.Now()
	lg.requestCount = 0
	lg.errorCount = 0
	lg.mu.Unlock()

	// Calculate an interval between requests based on the target rate
	interval := time.Second / time.Duration(lg.config.Rate)
	lg.ticker = time.NewTicker(interval)
	defer lg.ticker.Stop()

	log.Printf("Load generator starting with %d requests/second (interval: %v), initial goroutines: %d",
		lg.config.Rate, interval, runtime.NumGoroutine())

	// Start metrics reporting goroutine
	lg.wg.Add(1)
	go lg.metricsReporter(ctx)

	// Main load generation loop
	for {
		select {
		case <-ctx.Done():
			log.Printf("Load generator stopping due to context cancellation")
			return ctx.Err()

		case <-lg.stopChan:
			log.Printf("Load generator stopping due to stop signal")
			return nil

		case <-lg.ticker.C:
			lg.wg.Add(1)
			go lg.executeScenario(ctx)
		}
	}
}

// Stop gracefully shuts down the load generator.
func (lg *LoadGenerator) Stop(ctx context.Context) error {
	close(lg.stopChan)

	// Wait for all goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		lg.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		lg.logFinalStats()
		return nil
	case <-ctx.Done():
		lg.logFinalStats()
		return fmt.Errorf("shutdown timeout exceeded")
	}
}

// executeScenario runs a single load generation scenario based on the
// configured write weight.
func (lg *LoadGenerator) executeScenario(ctx context.Context) {
	defer lg.wg.Done()

	scenarioType := lg.selectScenario()

	var err error
	switch scenarioType {
	case "write":
		err = lg.runWriteScenario(ctx)
	case "read":
		err = lg.runReadScenario(ctx)
	default:
		err = fmt.Errorf("unknown scenario type: %s", scenarioType)
	}

	// Update internal counters
	lg.mu.Lock()
	lg.requestCount++
	if err != nil {
		lg.errorCount++
		log.Printf("Scenario error (%s): %v", scenarioType, err)
	}
	lg.mu.Unlock()
}

// selectScenario chooses a scenario type based on the configured write weight.
func (lg *LoadGenerator) selectScenario() string {
	// Generate random number 0-99
	r := rand.Intn(100) //nolint:gosec // Test code - weak random is acceptable

	// Example: write weight 30 -> write: 0-29, read: 30-99
	if r < lg.config.WriteWeight {
		return "write"
	}

	return "read"
}

// runWriteScenario executes stock management operations: marking books as
// borrowed or returned, and retiring books from stock.
func (lg *LoadGenerator) runWriteScenario(ctx context.Context) error {
	// Create timeout context for this operation
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	book := lg.bookForNumber(lg.randomBookNumber())

	switch rand.Intn(3) { //nolint:gosec // Test code - weak random is acceptable
	case 0:
		// A reader borrows the book; upsert covers books already retired
		return lg.repo.AddOrUpdate(opCtx, book.Borrowed())

	case 1:
		// A reader returns the book
		return lg.repo.AddOrUpdate(opCtx, book.Returned())

	default:
		// Retire the book from stock; absent books are not an error
		_, err := lg.repo.TryRemoveByID(opCtx, book.ID)
		return err
	}
}

// runReadScenario executes stock queries. Roughly half the probed identities
// do not exist, which exercises the lookup-miss recovery in the composed
// repository.
func (lg *LoadGenerator) runReadScenario(ctx context.Context) error {
	// Create timeout context for this operation
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id := lg.bookIDForNumber(lg.randomBookNumber())

	switch rand.Intn(3) { //nolint:gosec // Test code - weak random is acceptable
	case 0:
		// Misses come back as the zero Book through the recovery decorator
		_, err := lg.repo.GetByID(opCtx, id)
		return err

	case 1:
		_, _, err := lg.repo.TryGetByID(opCtx, id)
		return err

	default:
		_, err := lg.repo.GetCount(opCtx)
		return err
	}
}

// randomBookNumber picks a book number across twice the seeded range, so
// roughly half the generated identities refer to absent books.
func (lg *LoadGenerator) randomBookNumber() int64 {
	return rand.Int63n(int64(lg.config.InitialBooks)*2) + 1 //nolint:gosec // Test code - weak random is acceptable
}

// bookForNumber creates the book stored under the deterministic identity for
// the given number.
func (lg *LoadGenerator) bookForNumber(n int64) core.Book {
	book := core.NewBook(
		fmt.Sprintf("Load Test Book %d", n),
		"Test Author",
	)

	return book.WithID(lg.bookIDForNumber(n))
}

// bookIDForNumber creates a deterministic book identity for the given number.
func (lg *LoadGenerator) bookIDForNumber(n int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("book-%d", n))).String()
}

// metricsReporter logs metrics periodically.
func (lg *LoadGenerator) metricsReporter(ctx context.Context) {
	defer lg.wg.Done()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-lg.stopChan:
			return
		case <-ticker.C:
			lg.logCurrentStats()
		}
	}
}

// logCurrentStats logs current performance statistics.
func (lg *LoadGenerator) logCurrentStats() {
	lg.mu.RLock()
	duration := time.Since(lg.startTime)
	requests := lg.requestCount
	errors := lg.errorCount
	lg.mu.RUnlock()

	goroutineCount := runtime.NumGoroutine()

	if duration > 0 && requests > 0 {
		rps := float64(requests) / duration.Seconds()
		errorRate := float64(errors) / float64(requests) * 100
		log.Printf("Stats: %d requests in %v (%.1f req/s), %d errors (%.1f%%), %d goroutines",
			requests, duration.Truncate(time.Second), rps, errors, errorRate, goroutineCount)
	}
}

// logFinalStats logs final performance statistics.
func (lg *LoadGenerator) logFinalStats() {
	lg.mu.RLock()
	duration := time.Since(lg.startTime)
	requests := lg.requestCount
	errors := lg.errorCount
	lg.mu.RUnlock()

	goroutineCount := runtime.NumGoroutine()

	if duration > 0 && requests > 0 {
		rps := float64(requests) / duration.Seconds()
		errorRate := float64(errors) / float64(requests) * 100
		log.Printf("Final Stats: %d requests in %v (%.1f req/s), %d errors (%.1f%%), %d goroutines",
			requests, duration.Truncate(time.Second), rps, errors, errorRate, goroutineCount)
	}
}
