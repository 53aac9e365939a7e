package events

import (
	"encoding/json"
	"log"
	"os"

	"github.com/nats-io/nats.go"

	"taskassign/models"
)

const (
	SubjectTaskCreated = "tasks.created"
	SubjectTaskUpdated = "tasks.updated"
	SubjectTaskDeleted = "tasks.deleted"
	SubjectUserDeleted = "users.deleted"
)

// Connect dials NATS using NATS_URL.
func Connect() (*nats.Conn, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://nats:4222"
	}
	return nats.Connect(natsURL)
}

// Publisher emits task lifecycle events for the notification consumer. A nil
// Publisher or a Publisher without a connection drops events silently, so the
// service runs fine without a broker.
type Publisher struct {
	nc     *nats.Conn
	logger *log.Logger
}

func NewPublisher(nc *nats.Conn, logger *log.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

func (p *Publisher) TaskCreated(task *models.Task) { p.publish(SubjectTaskCreated, task) }
func (p *Publisher) TaskUpdated(task *models.Task) { p.publish(SubjectTaskUpdated, task) }

func (p *Publisher) TaskDeleted(taskID string) {
	p.publish(SubjectTaskDeleted, map[string]string{"taskId": taskID})
}

func (p *Publisher) UserDeleted(email string) {
	p.publish(SubjectUserDeleted, map[string]string{"email": email})
}

func (p *Publisher) publish(subject string, payload interface{}) {
	if p == nil || p.nc == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Println("Error encoding event payload:", err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Printf("Error publishing %s event: %v", subject, err)
	}
}
