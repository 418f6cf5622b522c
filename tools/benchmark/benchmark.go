// Package main provides a simple HTTP load tool for the classify endpoint
package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/pflag"
)

type parcelRequest struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	LengthCm float64 `json:"length_cm"`
	MassKg   float64 `json:"mass_kg"`
}

type classifyResponse struct {
	Category string `json:"category"`
}

// randomParcel spreads sizes around the thresholds so every category shows up
func randomParcel(r *rand.Rand) parcelRequest {
	return parcelRequest{
		WidthCm:  1 + r.Float64()*199,
		HeightCm: 1 + r.Float64()*199,
		LengthCm: 1 + r.Float64()*199,
		MassKg:   0.1 + r.Float64()*39.9,
	}
}

// latencyStats returns the average and minimum latency in microseconds.
// Both are zero when no request succeeded.
func latencyStats(reqs, total, minLatency int64) (float64, int64) {
	if reqs == 0 {
		return 0, 0
	}
	return float64(total) / float64(reqs), minLatency
}

func main() {
	url := pflag.String("url", "http://localhost:8080/v1/classify", "Target URL")
	duration := pflag.DurationP("duration", "d", 10*time.Second, "Test duration")
	concurrency := pflag.IntP("concurrency", "c", 10, "Number of concurrent workers")
	insecure := pflag.Bool("insecure", false, "Skip TLS certificate verification")
	pflag.Parse()

	fmt.Printf("Benchmarking %s\n", *url)
	fmt.Printf("Duration: %v, Concurrency: %d\n\n", *duration, *concurrency)

	tr := &http.Transport{
		MaxIdleConns:        *concurrency * 2,
		MaxIdleConnsPerHost: *concurrency * 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if *insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	client := &http.Client{
		Transport: tr,
		Timeout:   5 * time.Second,
	}

	var (
		totalRequests int64
		totalErrors   int64
		totalLatency  int64 // in microseconds
		minLatency    int64 = 1<<63 - 1
		maxLatency    int64
		wg            sync.WaitGroup
		stop          = make(chan struct{})

		mu         sync.Mutex
		categories = map[string]int64{}
	)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(seed, uint64(time.Now().UnixNano())))
			local := map[string]int64{}
			defer func() {
				mu.Lock()
				for k, v := range local {
					categories[k] += v
				}
				mu.Unlock()
			}()

			for {
				select {
				case <-stop:
					return
				default:
				}

				body, _ := json.Marshal(randomParcel(r))
				start := time.Now()
				resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
				latency := time.Since(start).Microseconds()

				if err != nil {
					atomic.AddInt64(&totalErrors, 1)
					continue
				}

				var out classifyResponse
				decodeErr := json.NewDecoder(resp.Body).Decode(&out)
				_ = resp.Body.Close()

				if resp.StatusCode != http.StatusOK || decodeErr != nil {
					atomic.AddInt64(&totalErrors, 1)
					continue
				}

				local[out.Category]++
				atomic.AddInt64(&totalRequests, 1)
				atomic.AddInt64(&totalLatency, latency)

				// Update min/max (approximate, not perfectly thread-safe)
				for {
					old := atomic.LoadInt64(&minLatency)
					if latency >= old || atomic.CompareAndSwapInt64(&minLatency, old, latency) {
						break
					}
				}
				for {
					old := atomic.LoadInt64(&maxLatency)
					if latency <= old || atomic.CompareAndSwapInt64(&maxLatency, old, latency) {
						break
					}
				}
			}
		}(uint64(i))
	}

	// Progress ticker
	ticker := time.NewTicker(time.Second)
	go func() {
		elapsed := 0
		for range ticker.C {
			elapsed++
			reqs := atomic.LoadInt64(&totalRequests)
			errs := atomic.LoadInt64(&totalErrors)
			fmt.Printf("[%ds] Requests: %d, Errors: %d, RPS: %.0f\n",
				elapsed, reqs, errs, float64(reqs)/float64(elapsed))
		}
	}()

	time.Sleep(*duration)
	close(stop)
	ticker.Stop()
	wg.Wait()

	reqs := atomic.LoadInt64(&totalRequests)
	errs := atomic.LoadInt64(&totalErrors)
	avgLatency, minLat := latencyStats(reqs, atomic.LoadInt64(&totalLatency), atomic.LoadInt64(&minLatency))
	maxLat := atomic.LoadInt64(&maxLatency)

	rps := float64(reqs) / duration.Seconds()

	fmt.Println("\n========== RESULTS ==========")
	fmt.Printf("Total requests:  %d\n", reqs)
	fmt.Printf("Total errors:    %d\n", errs)
	fmt.Printf("Duration:        %v\n", *duration)
	fmt.Printf("Concurrency:     %d\n", *concurrency)
	fmt.Println()
	fmt.Printf("RPS:             %.2f\n", rps)
	fmt.Println()
	fmt.Printf("Latency avg:     %.2f µs (%.3f ms)\n", avgLatency, avgLatency/1000)
	fmt.Printf("Latency min:     %d µs (%.3f ms)\n", minLat, float64(minLat)/1000)
	fmt.Printf("Latency max:     %d µs (%.3f ms)\n", maxLat, float64(maxLat)/1000)
	fmt.Println()
	for _, c := range []string{"STANDARD", "SPECIAL", "REJECTED"} {
		fmt.Printf("%-16s %d\n", c+":", categories[c])
	}

	if errs > 0 {
		os.Exit(1)
	}
}
