package backup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"cotton-backend/internal/metrics"
	"cotton-backend/internal/repositories"
	"cotton-backend/internal/timeutil"

	"github.com/google/uuid"
)

// Result is the structured outcome of a backup or restore. Failures are
// reported here, never raised to the caller as an error.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Records  int    `json:"records,omitempty"`
	Inserted int    `json:"inserted,omitempty"`
}

// Options controls what a backup includes. A zero Since means a full
// backup; otherwise transactional records are filtered by their own date
// field. Master data (ginners, mills) is always included in full.
type Options struct {
	Since time.Time `json:"since"`
}

// File name prefixes. Only full backups participate in retention pruning;
// incremental and pre-restore safety files are kept until removed by hand.
const (
	fullPrefix        = "cotton_backup"
	incrementalPrefix = "cotton_inc"
	prerestorePrefix  = "cotton_prerestore"
)

// Info describes one backup file on disk.
type Info struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Service produces point-in-time backup files and restores them with
// merge-by-primary-key semantics. A single mutex serializes backup against
// restore; running both at once could snapshot a half-restored store.
type Service struct {
	Dir       string
	Retention int

	Ginners    *repositories.GinnerRepository
	Mills      *repositories.MillRepository
	Contracts  *repositories.ContractRepository
	Deliveries *repositories.DeliveryRepository
	Payments   *repositories.PaymentRepository
	Ledger     *repositories.LedgerRepository

	Uploader *R2Uploader // nil when off-site copies are disabled

	mu sync.Mutex
}

func NewService(
	dir string,
	retention int,
	ginners *repositories.GinnerRepository,
	mills *repositories.MillRepository,
	contracts *repositories.ContractRepository,
	deliveries *repositories.DeliveryRepository,
	payments *repositories.PaymentRepository,
	ledger *repositories.LedgerRepository,
) *Service {
	return &Service{
		Dir:        dir,
		Retention:  retention,
		Ginners:    ginners,
		Mills:      mills,
		Contracts:  contracts,
		Deliveries: deliveries,
		Payments:   payments,
		Ledger:     ledger,
	}
}

// Backup writes all records to a new backup file. Never returns an error;
// every failure is folded into the Result.
func (s *Service) Backup(ctx context.Context, opts Options) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.collect(ctx, opts.Since)
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("failure").Inc()
		return Result{Message: fmt.Sprintf("backup failed: %v", err)}
	}

	full := opts.Since.IsZero()
	prefix := fullPrefix
	if !full {
		prefix = incrementalPrefix
	}

	path, err := s.writeSnapshot(snap, prefix)
	if err != nil {
		metrics.BackupsTotal.WithLabelValues("failure").Inc()
		return Result{Message: fmt.Sprintf("backup failed: %v", err)}
	}

	if full {
		if err := s.prune(); err != nil {
			log.Printf("[Backup] Prune failed: %v", err)
		}
		s.upload(ctx, path)
	}

	metrics.BackupsTotal.WithLabelValues("success").Inc()
	log.Printf("[Backup] Wrote %s (%d records)", filepath.Base(path), snap.RecordCount())
	return Result{
		Success: true,
		Message: fmt.Sprintf("backed up %d records", snap.RecordCount()),
		Path:    path,
		Records: snap.RecordCount(),
	}
}

// Restore merges a backup file into the live store. Records whose primary
// key already exists are never overwritten. A safety backup of the current
// state is taken before any insert.
func (s *Service) Restore(ctx context.Context, path string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Message: fmt.Sprintf("restore failed: %v", err)}
	}

	snap, err := decode(data)
	if err != nil {
		// Nothing has touched the live store at this point.
		return Result{Message: fmt.Sprintf("restore failed: %v", err)}
	}

	safety, err := s.collect(ctx, time.Time{})
	if err != nil {
		return Result{Message: fmt.Sprintf("restore failed taking safety backup: %v", err)}
	}
	if _, err := s.writeSnapshot(safety, prerestorePrefix); err != nil {
		return Result{Message: fmt.Sprintf("restore failed taking safety backup: %v", err)}
	}

	inserted, err := s.merge(ctx, snap)
	if err != nil {
		return Result{
			Message:  fmt.Sprintf("restore failed after %d inserts: %v", inserted, err),
			Inserted: inserted,
		}
	}

	metrics.RestoredRecords.Add(float64(inserted))
	log.Printf("[Backup] Restored %s: %d of %d records inserted", filepath.Base(path), inserted, snap.RecordCount())
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("restored %d records", inserted),
		Path:     path,
		Records:  snap.RecordCount(),
		Inserted: inserted,
	}
}

// List returns backup files in the backup directory, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != FileExt {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:      e.Name(),
			SizeBytes: fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	return infos, nil
}

// collect assembles a snapshot of the store. Transactional entities are
// filtered by their own date field when since is non-zero; master data is
// always complete so an incremental file restores cleanly on its own.
func (s *Service) collect(ctx context.Context, since time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		Version:   FormatVersion,
		ID:        uuid.NewString(),
		CreatedAt: timeutil.Now(),
		Device:    deviceTag(),
	}

	var err error
	if snap.Ginners, err = s.Ginners.List(ctx); err != nil {
		return nil, err
	}
	if snap.Mills, err = s.Mills.List(ctx); err != nil {
		return nil, err
	}

	contracts, err := s.Contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.Deliveries.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.Ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	if since.IsZero() {
		snap.Contracts = contracts
		snap.Deliveries = deliveries
		snap.Payments = payments
		snap.LedgerEntries = ledger
		return snap, nil
	}

	for _, c := range contracts {
		if !c.DateCreated.Before(since) {
			snap.Contracts = append(snap.Contracts, c)
		}
	}
	for _, d := range deliveries {
		if !d.DeliveryDate.Before(since) {
			snap.Deliveries = append(snap.Deliveries, d)
		}
	}
	for _, p := range payments {
		if !p.Date.Before(since) {
			snap.Payments = append(snap.Payments, p)
		}
	}
	for _, e := range ledger {
		if !e.DatePaid.Before(since) {
			snap.LedgerEntries = append(snap.LedgerEntries, e)
		}
	}
	return snap, nil
}

// merge inserts snapshot records whose primary key is absent from the live
// store, in dependency order: masters first, then contracts, then children.
func (s *Service) merge(ctx context.Context, snap *Snapshot) (int, error) {
	inserted := 0

	existingGinners, err := s.Ginners.List(ctx)
	if err != nil {
		return inserted, err
	}
	have := make(map[string]bool)
	for _, g := range existingGinners {
		have[g.GinnerID] = true
	}
	for _, g := range snap.Ginners {
		if !have[g.GinnerID] {
			if err := s.Ginners.Create(ctx, g); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	existingMills, err := s.Mills.List(ctx)
	if err != nil {
		return inserted, err
	}
	have = make(map[string]bool)
	for _, m := range existingMills {
		have[m.MillID] = true
	}
	for _, m := range snap.Mills {
		if !have[m.MillID] {
			if err := s.Mills.Create(ctx, m); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	existingContracts, err := s.Contracts.List(ctx)
	if err != nil {
		return inserted, err
	}
	have = make(map[string]bool)
	for _, c := range existingContracts {
		have[c.ContractID] = true
	}
	for _, c := range snap.Contracts {
		if !have[c.ContractID] {
			if err := s.Contracts.Create(ctx, c); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	existingDeliveries, err := s.Deliveries.List(ctx)
	if err != nil {
		return inserted, err
	}
	have = make(map[string]bool)
	for _, d := range existingDeliveries {
		have[d.DeliveryID] = true
	}
	for _, d := range snap.Deliveries {
		if !have[d.DeliveryID] {
			if err := s.Deliveries.Create(ctx, d); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	existingPayments, err := s.Payments.List(ctx)
	if err != nil {
		return inserted, err
	}
	have = make(map[string]bool)
	for _, p := range existingPayments {
		have[p.PaymentID] = true
	}
	for _, p := range snap.Payments {
		if !have[p.PaymentID] {
			if err := s.Payments.Create(ctx, p); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	existingLedger, err := s.Ledger.List(ctx)
	if err != nil {
		return inserted, err
	}
	have = make(map[string]bool)
	for _, e := range existingLedger {
		have[e.ContractID+"\x00"+e.DealID] = true
	}
	for _, e := range snap.LedgerEntries {
		if !have[e.ContractID+"\x00"+e.DealID] {
			if err := s.Ledger.Create(ctx, e); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	return inserted, nil
}

// writeSnapshot encodes and atomically publishes a snapshot file. A partial
// write never leaves a file a later restore would accept: content lands in
// a temp file that is renamed into place only after a successful write.
func (s *Service) writeSnapshot(snap *Snapshot, prefix string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := encode(snap)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s%s", prefix, snap.CreatedAt.Format(timeutil.StampLayout), FileExt)
	path := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, name+".tmp*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp backup file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to publish backup file: %w", err)
	}

	return path, nil
}

// prune removes full backup files beyond the retention count, oldest first.
func (s *Service) prune() error {
	if s.Retention <= 0 {
		return nil
	}

	all, err := s.List()
	if err != nil {
		return err
	}
	var infos []Info
	for _, info := range all {
		if strings.HasPrefix(info.Name, fullPrefix+"_") {
			infos = append(infos, info)
		}
	}
	for _, info := range infos[min(len(infos), s.Retention):] {
		if err := os.Remove(filepath.Join(s.Dir, info.Name)); err != nil {
			return fmt.Errorf("failed to prune %s: %w", info.Name, err)
		}
		log.Printf("[Backup] Pruned %s", info.Name)
	}
	return nil
}

func (s *Service) upload(ctx context.Context, path string) {
	if s.Uploader == nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[Backup] R2 upload skipped, cannot read %s: %v", path, err)
		return
	}
	key := "backups/" + filepath.Base(path)
	if err := s.Uploader.Upload(ctx, key, data); err != nil {
		log.Printf("[Backup] R2 upload failed: %v", err)
		return
	}
	log.Printf("[Backup] Uploaded %s to R2", key)
}

func deviceTag() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return host + "/" + runtime.GOOS
}
