package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/yukikurage/taskflow-api/internal/database"
	"gorm.io/gorm"
)

// shutdownOps drains the HTTP server before closing the database pool.
// gfshutdown runs operations concurrently, so the ordered steps share one operation.
func shutdownOps(srv *http.Server, db *gorm.DB) map[string]gfshutdown.Operation {
	return map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			log.Println("Graceful shutdown initiated...")
			shutdownErr := srv.Shutdown(ctx)
			if shutdownErr != nil {
				log.Printf("HTTP server shutdown: %v", shutdownErr)
			}
			return errors.Join(shutdownErr, database.Close(db))
		},
	}
}
