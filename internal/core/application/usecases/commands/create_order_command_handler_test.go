package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, "Widget",
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)
	loaded := queries.OrderView{ID: cmd.OrderID().Bytes(), Product: "Widget"}

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	views := new(MockOrderViewLoader)
	views.On("Load", ctx, cmd.OrderID()).Return(loaded, nil).Once()

	dispatcher := new(MockNotificationDispatcher)
	dispatcher.On("EnqueueOrderCreated", loaded).Once()

	h := commands.NewCreateOrderCommandHandler(factory, views, dispatcher, fixedClock{inWindow})
	view, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, loaded, view)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	views.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
	dispatcher.AssertNumberOfCalls(t, "EnqueueOrderCreated", 1)
}

func TestCreateOrderCommandHandler_Handle_OutsideOperatingWindow(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	factory := new(MockOrderUoWFactory)
	views := new(MockOrderViewLoader)
	dispatcher := new(MockNotificationDispatcher)

	h := commands.NewCreateOrderCommandHandler(factory, views, dispatcher, fixedClock{outWindow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOutsideOperatingWindow)
	// Storage is never touched and nothing is enqueued.
	factory.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "EnqueueOrderCreated", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	h := commands.NewCreateOrderCommandHandler(
		new(MockOrderUoWFactory), new(MockOrderViewLoader), new(MockNotificationDispatcher), fixedClock{inWindow},
	)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockNotificationDispatcher)

	h := commands.NewCreateOrderCommandHandler(factory, new(MockOrderViewLoader), dispatcher, fixedClock{inWindow})
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	dispatcher.AssertNotCalled(t, "EnqueueOrderCreated", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ReloadError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	views := new(MockOrderViewLoader)
	views.On("Load", ctx, cmd.OrderID()).Return(queries.OrderView{}, errors.New("reload failed")).Once()

	dispatcher := new(MockNotificationDispatcher)

	// The reload failure fails the create even though the row was inserted.
	h := commands.NewCreateOrderCommandHandler(factory, views, dispatcher, fixedClock{inWindow})
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	dispatcher.AssertNotCalled(t, "EnqueueOrderCreated", mock.Anything)
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	t.Run("rejects_empty_product", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, "",
		)
		require.Error(t, err)
	})

	t.Run("rejects_zero_identifiers", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), zero, kernel.NewUUID(), nil, "Widget",
		)
		require.Error(t, err)
	})

	t.Run("accepts_optional_signature", func(t *testing.T) {
		signatureID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &signatureID, "Widget",
		)
		require.NoError(t, err)
		require.NotNil(t, cmd.SignatureID())
		assert.True(t, cmd.SignatureID().IsEqual(signatureID))
	})
}
