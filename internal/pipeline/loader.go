package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/store"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DayRecord is what was persisted for one calendar day.
type DayRecord struct {
	Date    time.Time
	Food    []model.FoodEntry
	Steps   int
	Logged  bool
	Corrupt bool
}

// LoadResult holds the output of LoadDays.
type LoadResult struct {
	Days        []DayRecord
	Weights     []model.WeightSample
	KeysScanned int
	CorruptDays int
	ReadErrors  int
}

// ProgressFunc is called during loading to report progress.
type ProgressFunc func(current, total int)

// LoadDays reads every stored day in [since, until] (local calendar days)
// plus the weight history. Reads fan out over a bounded worker pool.
// Malformed values are counted and treated as absent.
func LoadDays(ctx context.Context, st store.Store, since, until time.Time, log *zap.Logger, progressFn ProgressFunc) (*LoadResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	from, to := DayKey(since), DayKey(until)

	dates := make(map[string]struct{})
	result := &LoadResult{}
	for _, prefix := range []string{store.FoodLogPrefix, store.StepsPrefix} {
		keys, err := st.Keys(ctx, prefix)
		if err != nil {
			return nil, fmt.Errorf("listing %s keys: %w", prefix, err)
		}
		result.KeysScanned += len(keys)
		for _, k := range keys {
			d, _ := store.DateOf(k)
			if _, err := time.Parse(dateLayout, d); err != nil {
				continue
			}
			if d >= from && d <= to {
				dates[d] = struct{}{}
			}
		}
	}

	toLoad := make([]string, 0, len(dates))
	for d := range dates {
		toLoad = append(toLoad, d)
	}
	sort.Strings(toLoad)

	records := make([]DayRecord, len(toLoad))
	readErrs := make([]error, len(toLoad))

	if len(toLoad) > 0 {
		numWorkers := runtime.GOMAXPROCS(0)
		if numWorkers < 1 {
			numWorkers = 4
		}
		if numWorkers > len(toLoad) {
			numWorkers = len(toLoad)
		}

		work := make(chan int, len(toLoad))
		for i := range toLoad {
			work <- i
		}
		close(work)

		var wg sync.WaitGroup
		var processed atomic.Int64
		wg.Add(numWorkers)
		for w := 0; w < numWorkers; w++ {
			go func() {
				defer wg.Done()
				for idx := range work {
					records[idx], readErrs[idx] = readDay(ctx, st, toLoad[idx], log)
					n := processed.Add(1)
					if progressFn != nil {
						progressFn(int(n), len(toLoad))
					}
				}
			}()
		}
		wg.Wait()
	}

	for i, rec := range records {
		if readErrs[i] != nil {
			result.ReadErrors++
			log.Warn("reading day", zap.String("date", toLoad[i]), zap.Error(readErrs[i]))
			continue
		}
		if rec.Corrupt {
			result.CorruptDays++
		}
		result.Days = append(result.Days, rec)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, ok, err := st.Get(ctx, store.KeyWeightLog)
	if err != nil {
		return nil, fmt.Errorf("reading weight log: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &result.Weights); err != nil {
			log.Debug("ignoring malformed weight log", zap.Error(err))
			result.Weights = nil
		}
	}
	return result, nil
}

func readDay(ctx context.Context, st store.Store, date string, log *zap.Logger) (DayRecord, error) {
	day, _ := time.ParseInLocation(dateLayout, date, time.Local)
	rec := DayRecord{Date: day}

	raw, ok, err := st.Get(ctx, store.FoodLogKey(date))
	if err != nil {
		return rec, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &rec.Food); err != nil {
			log.Debug("ignoring malformed food log", zap.String("date", date), zap.Error(err))
			rec.Food = nil
			rec.Corrupt = true
		} else {
			rec.Logged = len(rec.Food) > 0
		}
	}

	raw, ok, err = st.Get(ctx, store.StepsKey(date))
	if err != nil {
		return rec, err
	}
	if ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			rec.Corrupt = true
		} else {
			rec.Steps = n
		}
	}
	return rec, nil
}

// DayKey formats t as a local calendar date.
func DayKey(t time.Time) string {
	return t.Local().Format(dateLayout)
}
