package persistence

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

// FileMinePlanRepository implements mineplan.Library as one
// newline-delimited-record file per plan list, per spec §6's recommended
// on-disk format: "plan#, launch (lat, lon, alt), drop (lat, lon, alt),
// waypoint-count" per line, followed by one "lat,lon,alt" line per
// waypoint. Selected
// when persistence.type is "memory" (no database connection).
type FileMinePlanRepository struct {
	dir string
	mu  sync.Mutex
}

func NewFileMinePlanRepository(dir string) *FileMinePlanRepository {
	return &FileMinePlanRepository{dir: dir}
}

var _ mineplan.Library = (*FileMinePlanRepository)(nil)

func (r *FileMinePlanRepository) listPath(listNumber int) string {
	return filepath.Join(r.dir, fmt.Sprintf("list_%d.txt", listNumber))
}

func (r *FileMinePlanRepository) Create(ctx context.Context, listNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create mine data dir: %w", err)
	}
	path := r.listPath(listNumber)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, nil, 0o644)
}

func (r *FileMinePlanRepository) Delete(ctx context.Context, listNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := os.Remove(r.listPath(listNumber))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (r *FileMinePlanRepository) Load(ctx context.Context, listNumber int) (*mineplan.PlanList, error) {
	return r.GetList(ctx, listNumber)
}

func (r *FileMinePlanRepository) GetList(ctx context.Context, listNumber int) (*mineplan.PlanList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.listPath(listNumber))
	if err != nil {
		if os.IsNotExist(err) {
			return &mineplan.PlanList{Number: listNumber}, nil
		}
		return nil, err
	}
	defer f.Close()

	plans, err := decodePlans(f)
	if err != nil {
		return nil, err
	}
	return &mineplan.PlanList{Number: listNumber, Plans: plans}, nil
}

func (r *FileMinePlanRepository) Save(ctx context.Context, listNumber int, plans []mineplan.Plan) error {
	for _, p := range plans {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create mine data dir: %w", err)
	}

	var sb strings.Builder
	for _, p := range plans {
		encodePlan(&sb, p)
	}
	return os.WriteFile(r.listPath(listNumber), []byte(sb.String()), 0o644)
}

func (r *FileMinePlanRepository) GetPlan(ctx context.Context, listNumber, planNumber int) (*mineplan.Plan, error) {
	list, err := r.GetList(ctx, listNumber)
	if err != nil {
		return nil, err
	}
	for i := range list.Plans {
		if list.Plans[i].Number == planNumber {
			return &list.Plans[i], nil
		}
	}
	return nil, shared.NewPlanValidationError("plan_number", fmt.Sprintf("plan %d not found in list %d", planNumber, listNumber))
}

func (r *FileMinePlanRepository) UpdatePlan(ctx context.Context, listNumber int, plan mineplan.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	list, err := r.GetList(ctx, listNumber)
	if err != nil {
		return err
	}
	replaced := false
	for i := range list.Plans {
		if list.Plans[i].Number == plan.Number {
			list.Plans[i] = plan
			replaced = true
			break
		}
	}
	if !replaced {
		list.Plans = append(list.Plans, plan)
	}
	return r.Save(ctx, listNumber, list.Plans)
}

func (r *FileMinePlanRepository) AddPlan(ctx context.Context, listNumber int, plan mineplan.Plan) error {
	return r.UpdatePlan(ctx, listNumber, plan)
}

func (r *FileMinePlanRepository) RemovePlan(ctx context.Context, listNumber, planNumber int) error {
	list, err := r.GetList(ctx, listNumber)
	if err != nil {
		return err
	}
	kept := list.Plans[:0]
	for _, p := range list.Plans {
		if p.Number != planNumber {
			kept = append(kept, p)
		}
	}
	return r.Save(ctx, listNumber, kept)
}

func (r *FileMinePlanRepository) AvailableListNumbers(ctx context.Context) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var numbers []int
	for _, e := range entries {
		var n int
		if _, err := fmt.Sscanf(e.Name(), "list_%d.txt", &n); err == nil {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

func encodePlan(sb *strings.Builder, p mineplan.Plan) {
	fmt.Fprintf(sb, "%d,%f,%f,%f,%f,%f,%f,%d\n",
		p.Number,
		p.Launch.Lat, p.Launch.Lon, p.Launch.Alt,
		p.Drop.Lat, p.Drop.Lon, p.Drop.Alt,
		len(p.Waypoints))
	for _, wp := range p.Waypoints {
		fmt.Fprintf(sb, "%f,%f,%f\n", wp.Lat, wp.Lon, wp.Alt)
	}
}

func decodePlans(f *os.File) ([]mineplan.Plan, error) {
	scanner := bufio.NewScanner(f)
	var plans []mineplan.Plan
	for scanner.Scan() {
		header := strings.TrimSpace(scanner.Text())
		if header == "" {
			continue
		}
		fields := strings.Split(header, ",")
		if len(fields) != 8 {
			return nil, fmt.Errorf("malformed plan header: %q", header)
		}
		num, _ := strconv.Atoi(fields[0])
		launchLat, _ := strconv.ParseFloat(fields[1], 64)
		launchLon, _ := strconv.ParseFloat(fields[2], 64)
		launchAlt, _ := strconv.ParseFloat(fields[3], 64)
		dropLat, _ := strconv.ParseFloat(fields[4], 64)
		dropLon, _ := strconv.ParseFloat(fields[5], 64)
		dropAlt, _ := strconv.ParseFloat(fields[6], 64)
		wpCount, _ := strconv.Atoi(fields[7])

		waypoints := make([]shared.GeoPosition, 0, wpCount)
		for i := 0; i < wpCount; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("truncated waypoint list for plan %d", num)
			}
			wpFields := strings.Split(strings.TrimSpace(scanner.Text()), ",")
			if len(wpFields) != 3 {
				return nil, fmt.Errorf("malformed waypoint line for plan %d", num)
			}
			lat, _ := strconv.ParseFloat(wpFields[0], 64)
			lon, _ := strconv.ParseFloat(wpFields[1], 64)
			alt, _ := strconv.ParseFloat(wpFields[2], 64)
			waypoints = append(waypoints, shared.GeoPosition{Lat: lat, Lon: lon, Alt: alt})
		}

		plans = append(plans, mineplan.Plan{
			Number:    num,
			Launch:    shared.GeoPosition{Lat: launchLat, Lon: launchLon, Alt: launchAlt},
			Drop:      shared.GeoPosition{Lat: dropLat, Lon: dropLon, Alt: dropAlt},
			Waypoints: waypoints,
		})
	}
	return plans, scanner.Err()
}
