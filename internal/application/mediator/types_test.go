package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/application/mediator"
)

type pingCommand struct{ Value string }
type pingResponse struct{ Echo string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd := request.(*pingCommand)
	return &pingResponse{Echo: cmd.Value}, nil
}

func TestMediator_RegisterAndSend(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingCommand{Value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.(*pingResponse).Echo)
}

func TestMediator_DuplicateRegistrationFails(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, pingHandler{}))
	err := mediator.RegisterHandler[*pingCommand](m, pingHandler{})
	assert.Error(t, err)
}

func TestMediator_SendWithoutHandlerFails(t *testing.T) {
	m := mediator.NewMediator()
	_, err := m.Send(context.Background(), &pingCommand{})
	assert.Error(t, err)
}

func TestMediator_SendNilRequestFails(t *testing.T) {
	m := mediator.NewMediator()
	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)
}
