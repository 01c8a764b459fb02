package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	// 400/403/404 are expected when workers race on the same pair
	RejectedRequests int64
	FailedRequests   int64
	TotalDuration    int64
}

type Config struct {
	BaseURL    string
	Workers    int
	Duration   int
	UserIDFrom int64
	UserIDTo   int64
	RPS        int
}

var stats Stats

type rejectedError struct {
	status int
}

func (e rejectedError) Error() string {
	return fmt.Sprintf("rejected with status %d", e.status)
}

func main() {
	config := parseFlags()
	log.Printf("Starting friendship load with config: %+v", config)

	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	perWorker := config.RPS / config.Workers
	if perWorker == 0 {
		perWorker = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go worker(i, config, perWorker, done, &wg)
	}

	go printStats(done)

	if config.Duration > 0 {
		go func() {
			time.Sleep(time.Duration(config.Duration) * time.Second)
			stop()
		}()
	}
	go func() {
		<-sigChan
		log.Println("Received interrupt signal, shutting down...")
		stop()
	}()

	wg.Wait()
	printFinalStats()
}

func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.BaseURL, "url", "http://localhost:8080/api/v1", "Friendship API base URL")
	flag.IntVar(&config.Workers, "workers", 10, "Number of concurrent workers")
	flag.IntVar(&config.Duration, "duration", 60, "Test duration in seconds (0 for infinite)")
	flag.Int64Var(&config.UserIDFrom, "user-from", 1, "Starting user ID range")
	flag.Int64Var(&config.UserIDTo, "user-to", 100, "Ending user ID range")
	flag.IntVar(&config.RPS, "rps", 100, "Requests per second target")
	flag.Parse()
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return config
}

func worker(id int, config Config, rps int, done <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(time.Second / time.Duration(rps))
	defer ticker.Stop()

	operations := []string{"friend_request", "friend_request", "answer", "notifications", "search"}
	for {
		select {
		case <-done:
			log.Printf("Worker %d stopping", id)
			return
		case <-ticker.C:
			user := randUserID(config.UserIDFrom, config.UserIDTo)
			other := randUserID(config.UserIDFrom, config.UserIDTo)
			for other == user && config.UserIDTo > config.UserIDFrom {
				other = randUserID(config.UserIDFrom, config.UserIDTo)
			}

			start := time.Now()
			var err error
			switch operations[rand.Intn(len(operations))] {
			case "friend_request":
				err = post(client, config.BaseURL+"/users/friend-request", map[string]int64{"from": user, "to": other})
			case "answer":
				err = answerFirstPending(client, config.BaseURL, user)
			case "notifications":
				_, err = notifications(client, config.BaseURL, user)
			case "search":
				err = search(client, config.BaseURL, user)
			}
			record(time.Since(start), err)
		}
	}
}

func record(duration time.Duration, err error) {
	atomic.AddInt64(&stats.TotalRequests, 1)
	atomic.AddInt64(&stats.TotalDuration, duration.Milliseconds())

	var rejected rejectedError
	switch {
	case err == nil:
		atomic.AddInt64(&stats.SuccessRequests, 1)
	case errors.As(err, &rejected):
		atomic.AddInt64(&stats.RejectedRequests, 1)
	default:
		atomic.AddInt64(&stats.FailedRequests, 1)
		log.Printf("request failed: %v", err)
	}
}

func do(client *http.Client, req *http.Request, out interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return rejectedError{status: resp.StatusCode}
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func post(client *http.Client, endpoint string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req, nil)
}

type feedResponse struct {
	Pending []struct {
		RelationID int64 `json:"relationId"`
	} `json:"pending"`
}

func notifications(client *http.Client, baseURL string, user int64) (feedResponse, error) {
	var feed feedResponse
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/users/notifications?userId=%d", baseURL, user), nil)
	if err != nil {
		return feed, fmt.Errorf("failed to create request: %w", err)
	}
	err = do(client, req, &feed)
	return feed, err
}

// answerFirstPending accepts or rejects the first request waiting for user.
func answerFirstPending(client *http.Client, baseURL string, user int64) error {
	feed, err := notifications(client, baseURL, user)
	if err != nil || len(feed.Pending) == 0 {
		return err
	}
	endpoint := baseURL + "/users/accept-request"
	if rand.Intn(4) == 0 {
		endpoint = baseURL + "/users/reject-request"
	}
	return post(client, endpoint, map[string]int64{"relationId": feed.Pending[0].RelationID, "userId": user})
}

func search(client *http.Client, baseURL string, user int64) error {
	prefix := gofakeit.FirstName()
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	q := url.QueryEscape(prefix)
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/users/search_user?q=%s&currentUser=%d", baseURL, q, user), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return do(client, req, nil)
}

func randUserID(from, to int64) int64 {
	return from + rand.Int63n(to-from+1)
}

func snapshot() (total, success, rejected, failed, avgLatency int64, successRate float64) {
	total = atomic.LoadInt64(&stats.TotalRequests)
	success = atomic.LoadInt64(&stats.SuccessRequests)
	rejected = atomic.LoadInt64(&stats.RejectedRequests)
	failed = atomic.LoadInt64(&stats.FailedRequests)
	if total > 0 {
		avgLatency = atomic.LoadInt64(&stats.TotalDuration) / total
		successRate = float64(success) / float64(total) * 100
	}
	return
}

func printStats(done <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			total, success, rejected, failed, avgLatency, successRate := snapshot()
			log.Printf("[STATS] Total: %d | Success: %d | Rejected: %d | Failed: %d | Success Rate: %.2f%% | Avg Latency: %dms",
				total, success, rejected, failed, successRate, avgLatency)
		}
	}
}

func printFinalStats() {
	total, success, rejected, failed, avgLatency, successRate := snapshot()
	log.Println("========== FINAL STATISTICS ==========")
	log.Printf("Total Requests:     %d", total)
	log.Printf("Successful:         %d", success)
	log.Printf("Rejected (4xx):     %d", rejected)
	log.Printf("Failed:             %d", failed)
	log.Printf("Success Rate:       %.2f%%", successRate)
	log.Printf("Average Latency:    %dms", avgLatency)
	log.Println("======================================")
}
