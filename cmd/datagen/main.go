package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// datagen генерирует пример сенсорного CSV датасета для ручного тестирования:
//
//	go run ./cmd/datagen -rows 24 -stressed -out sample.csv
//	curl -X POST --data-binary @sample.csv http://localhost:8080/api/datasets/student-42

var header = []string{
	"timestamp",
	"location_id",
	"temperature_celsius",
	"humidity_percent",
	"air_quality_index",
	"noise_level_db",
	"lighting_lux",
	"crowd_density",
	"stress_level",
	"sleep_hours",
	"mood_score",
	"mental_health_status",
}

func main() {
	rows := flag.Int("rows", 12, "number of data rows to generate")
	out := flag.String("out", "", "output file (stdout if empty)")
	stressed := flag.Bool("stressed", false, "generate a high-stress profile")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if *rows < 1 {
		log.Fatalf("[FATAL] rows must be at least 1")
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("[FATAL] Failed to create output file: %v", err)
		}
		defer f.Close()
		w = f
	}

	rng := rand.New(rand.NewSource(*seed))
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		log.Fatalf("[FATAL] Failed to write header: %v", err)
	}

	// Случайное блуждание в безопасных пределах каждой метрики
	gen := newWalker(rng, *stressed)
	start := time.Now().UTC().Truncate(time.Hour)

	for i := 0; i < *rows; i++ {
		ts := start.Add(time.Duration(i) * 5 * time.Minute)
		if err := writer.Write(gen.next(ts)); err != nil {
			log.Fatalf("[FATAL] Failed to write row: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatalf("[FATAL] Failed to flush CSV: %v", err)
	}
}

// walker держит текущее состояние случайного блуждания по метрикам
type walker struct {
	rng      *rand.Rand
	stressed bool

	temperature float64
	humidity    float64
	noise       float64
	lighting    float64
	mood        float64
	stress      int
	sleep       float64
}

func newWalker(rng *rand.Rand, stressed bool) *walker {
	w := &walker{
		rng:         rng,
		stressed:    stressed,
		temperature: 22.0,
		humidity:    45.0,
		noise:       55.0,
		lighting:    400.0,
		mood:        6.0,
		stress:      25,
		sleep:       7.5,
	}
	if stressed {
		w.mood = 1.5
		w.stress = 70
		w.sleep = 4.5
	}
	return w
}

func (w *walker) next(ts time.Time) []string {
	w.temperature = clampFloat(w.temperature+w.rng.Float64()*2-1, 15, 32)
	w.humidity = clampFloat(w.humidity+w.rng.Float64()*4-2, 0, 100)
	w.noise = clampFloat(w.noise+w.rng.Float64()*6-3, 30, 100)
	w.lighting = clampFloat(w.lighting+w.rng.Float64()*60-30, 50, 1000)
	w.stress = clampInt(w.stress+w.rng.Intn(9)-4, 0, 100)
	w.sleep = clampFloat(w.sleep+w.rng.Float64()*0.6-0.3, 0, 24)
	w.mood = clampFloat(w.mood+w.rng.Float64()*0.8-0.4, 0, 10)

	status := 0
	if w.stressed {
		status = 1 + w.rng.Intn(2)
	}

	return []string{
		ts.Format("2006-01-02T15:04:05Z"),
		strconv.Itoa(1 + w.rng.Intn(5)),
		fmt.Sprintf("%.1f", w.temperature),
		fmt.Sprintf("%.1f", w.humidity),
		strconv.Itoa(20 + w.rng.Intn(130)),
		fmt.Sprintf("%.1f", w.noise),
		fmt.Sprintf("%.1f", w.lighting),
		strconv.Itoa(w.rng.Intn(40)),
		strconv.Itoa(w.stress),
		fmt.Sprintf("%.1f", w.sleep),
		fmt.Sprintf("%.1f", w.mood),
		strconv.Itoa(status),
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
