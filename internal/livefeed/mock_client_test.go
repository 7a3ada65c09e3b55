package livefeed_test

import "justiciaverde/backend/internal/models"

type MockClient struct {
	id          string
	cerrado     bool
	RecvChannel chan models.EventoDenuncia
}

func newMockClient(id string, buffer int) *MockClient {
	return &MockClient{
		id:          id,
		RecvChannel: make(chan models.EventoDenuncia, buffer),
	}
}

func (c *MockClient) GetID() string {
	return c.id
}

func (c *MockClient) GetSendChannel() chan<- models.EventoDenuncia {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.cerrado = true
}
