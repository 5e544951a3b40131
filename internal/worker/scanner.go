package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fightforgift/reward-engine/internal/adapter"
	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/store"
	"github.com/fightforgift/reward-engine/internal/store/schema"
)

// ScannerConfig holds configuration for the inventory scanner
type ScannerConfig struct {
	Interval  time.Duration // Time to sleep between scan cycles
	ScanDepth int           // Feed entries to read per cycle
	SourceRef string        // Upstream feed channel
}

// inventoryScanner ingests upstream gift events into the inventory table.
// Inserts are append-only; the scanner never touches the used flag. A failed
// dedup lookup treats the event as a duplicate, since re-ingesting a unique
// collectible is worse than missing a cycle.
type inventoryScanner struct {
	lifecycle
	config  *ScannerConfig
	store   store.Store
	gateway gateway.Gateway
	clock   adapter.Clock
}

// NewInventoryScanner creates a new inventory scanner worker
func NewInventoryScanner(config *ScannerConfig, st store.Store, gw gateway.Gateway, clock adapter.Clock) Worker {
	return &inventoryScanner{
		lifecycle: newLifecycle(),
		config:    config,
		store:     st,
		gateway:   gw,
		clock:     clock,
	}
}

// Name returns the worker's name
func (s *inventoryScanner) Name() string {
	return "inventory-scanner"
}

// Start begins the scanner's main loop
func (s *inventoryScanner) Start(ctx context.Context) error {
	if !s.begin() {
		return fmt.Errorf("scanner already running")
	}
	defer s.finish()

	logger.InfoCtx(ctx, "Starting inventory scanner",
		zap.Duration("interval", s.config.Interval),
		zap.Int("scan_depth", s.config.ScanDepth),
		zap.String("source_ref", s.config.SourceRef),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Inventory scanner stopping", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Inventory scanner stop requested")
			return nil
		default:
			if err := s.runScanCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, s.clock, s.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the scanner
func (s *inventoryScanner) Stop(ctx context.Context) error {
	return s.stop(ctx)
}

// runScanCycle reads one bounded batch from the feed and ingests it
func (s *inventoryScanner) runScanCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	events, err := s.gateway.ScanUpstreamFeed(ctx, s.config.SourceRef, s.config.ScanDepth)
	if err != nil {
		return fmt.Errorf("failed to scan upstream feed: %w", err)
	}

	var added, skipped, failed int
	for _, event := range events {
		switch s.ingest(ctx, event) {
		case ingestAdded:
			added++
		case ingestSkipped:
			skipped++
		case ingestFailed:
			failed++
		}
	}

	logger.InfoCtx(ctx, "Scan cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("events", len(events)),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	return nil
}

type ingestResult int

const (
	ingestAdded ingestResult = iota
	ingestSkipped
	ingestFailed
)

// ingest dedups and inserts a single feed event
func (s *inventoryScanner) ingest(ctx context.Context, event gateway.GiftEvent) ingestResult {
	active, err := s.store.HasActiveInventoryItem(ctx, event.Identifier)
	if err != nil {
		// Safer to assume a duplicate than to risk double-issuing
		logger.WarnCtx(ctx, "Dedup check failed, skipping event",
			zap.Int64("identifier", event.Identifier),
			zap.Error(err),
		)
		return ingestFailed
	}
	if active {
		logger.DebugCtx(ctx, "Item already active, skipping",
			zap.Int64("identifier", event.Identifier),
		)
		return ingestSkipped
	}

	item := &schema.InventoryItem{
		Identifier:     event.Identifier,
		Label:          event.Label,
		Slug:           event.Slug,
		AcquisitionRef: event.MessageRef,
		TransferPrice:  event.TransferPrice,
		Raw:            datatypes.JSON(event.Raw),
	}
	if event.Slug != "" {
		item.Link = fmt.Sprintf("https://t.me/nft/%s", event.Slug)
	}

	if err := s.store.InsertInventoryItem(ctx, item); err != nil {
		logger.WarnCtx(ctx, "Failed to insert inventory item, skipping event",
			zap.Int64("identifier", event.Identifier),
			zap.Error(err),
		)
		return ingestFailed
	}

	logger.InfoCtx(ctx, "Inventory item added",
		zap.Int64("identifier", event.Identifier),
		zap.String("label", event.Label),
		zap.Int64("acquisition_ref", event.MessageRef),
	)
	return ingestAdded
}
