package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/jatinenterprises/site-backend/internal/infra/mail"
)

type HealthHandler struct {
	DB        *sql.DB
	RabbitMQ  *amqp091.Connection
	Mail      *mail.EmailSender
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, mailSender *mail.EmailSender) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Mail:      mailSender,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Mail is best-effort by design; unconfigured is not unhealthy.
	if h.Mail != nil && h.Mail.Configured() {
		deps["mail"] = "configured"
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
