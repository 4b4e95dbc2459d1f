//go:build ignore
// +build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Manual helper: publishes a dataset refresh hint the same way the API
// does when a covered place gets traffic, so the worker path can be
// exercised without running the API.
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	osmID := flag.String("osm", "osm:node:36153811", "place identifier to hint")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "places:dataset:refresh",
		Values: map[string]interface{}{
			"place_id": *osmID,
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish hint: %v", err)
	}

	fmt.Printf("Hint published\n")
	fmt.Printf("   Stream: places:dataset:refresh\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Place ID: %s\n", *osmID)
}
