// Standalone maintenance script: recompute the fingerprint of every queue
// entry from the request stored in its parameter bag and report rows whose
// stored fingerprint no longer matches (a drift means the canonicalization
// changed incompatibly, or the row was tampered with).
//
// Usage:
//
//	CONNECTION_STRING=postgres://... go run ./scripts -rps 50 [-fix]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/utils"
)

const batchSize = 500

type auditRow struct {
	id          string
	fingerprint string
	params      []byte
}

func main() {
	var (
		rps int
		fix bool
	)
	flag.IntVar(&rps, "rps", 20, "Max rows checked per second (keeps the audit off the query planner's hot path)")
	flag.BoolVar(&fix, "fix", false, "Rewrite drifted fingerprints instead of only reporting them")
	flag.Parse()

	logger := utils.NewLogger("text")
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := pgxpool.New(ctx, utils.GetRequiredEnv[string]("CONNECTION_STRING"))
	if err != nil {
		log.Fatalf("failed to create pool: %v", err)
	}
	defer pool.Close()

	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	var (
		lastId  string
		checked int
		drifted int
		skipped int
	)

	for {
		rows, err := pool.Query(ctx, `
			SELECT id, params->>'fingerprint', params->'request'
			FROM queue_entries
			WHERE kind = 'simulation' AND id > $1
			ORDER BY id
			LIMIT $2`,
			lastId, batchSize)
		if err != nil {
			log.Fatalf("failed to list queue entries: %v", err)
		}

		batch := make([]auditRow, 0, batchSize)
		for rows.Next() {
			var row auditRow
			if err := rows.Scan(&row.id, &row.fingerprint, &row.params); err != nil {
				log.Fatalf("failed to scan queue entry: %v", err)
			}
			batch = append(batch, row)
		}
		rows.Close()
		if len(batch) == 0 {
			break
		}
		lastId = batch[len(batch)-1].id

		for _, row := range batch {
			if err := limiter.Wait(ctx); err != nil {
				log.Fatalf("rate limiter: %v", err)
			}
			checked++

			var request models.SimulationRequest
			if len(row.params) == 0 || json.Unmarshal(row.params, &request) != nil {
				skipped++
				continue
			}
			recomputed, err := request.Fingerprint()
			if err != nil {
				skipped++
				continue
			}
			if recomputed == row.fingerprint {
				continue
			}

			drifted++
			logger.WarnContext(ctx, "fingerprint drift",
				"queue_entry_id", row.id,
				"stored", row.fingerprint,
				"recomputed", recomputed)

			if fix {
				_, err := pool.Exec(ctx, `
					UPDATE queue_entries
					SET params = jsonb_set(params, '{fingerprint}', to_jsonb($1::text)),
					    updated_at = $2
					WHERE id = $3`,
					recomputed, time.Now(), row.id)
				if err != nil {
					log.Fatalf("failed to fix queue entry %s: %v", row.id, err)
				}
			}
		}
	}

	logger.InfoContext(ctx, "fingerprint audit done",
		"checked", checked, "drifted", drifted, "skipped", skipped, "fixed", fix)
}
