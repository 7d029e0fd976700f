package googlecloud

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"
)

// Client wraps the Google Cloud Datastore client and hands out the user, task
// and session stores that share it.
type Client struct {
	ds *datastore.Client
}

// NewClient creates a new Google Cloud Datastore client.
// It checks for DATASTORE_EMULATOR_HOST to verify if running against an emulator.
func NewClient(ctx context.Context, projectID string) (*Client, error) {
	// The official client detects DATASTORE_EMULATOR_HOST automatically.
	if emulatorHost := os.Getenv("DATASTORE_EMULATOR_HOST"); emulatorHost != "" {
		fmt.Printf("Initializing Datastore Client against Emulator at %s\n", emulatorHost)
	}

	ds, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}

	return &Client{ds: ds}, nil
}

// Ping issues a cheap keys-only query so startup fails fast when the backend
// is unreachable.
func (c *Client) Ping(ctx context.Context) error {
	q := datastore.NewQuery(KindUser).KeysOnly().Limit(1)
	if _, err := c.ds.GetAll(ctx, q, nil); err != nil {
		return fmt.Errorf("datastore ping: %w", err)
	}
	return nil
}

func (c *Client) Users() *UserStore       { return &UserStore{ds: c.ds} }
func (c *Client) Tasks() *TaskStore       { return &TaskStore{ds: c.ds} }
func (c *Client) Sessions() *SessionStore { return &SessionStore{ds: c.ds} }

// Close closes the underlying datastore client.
func (c *Client) Close() error {
	return c.ds.Close()
}
