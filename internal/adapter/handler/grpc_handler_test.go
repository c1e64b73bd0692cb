package handler

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/stock-control/internal/core/domain"
)

func newGRPCClient(t *testing.T) *grpc.ClientConn {
	inventory, _ := newTestInventory(t)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterStockServiceServer(srv, NewGRPCHandler(inventory))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype("json")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func invoke(t *testing.T, conn *grpc.ClientConn, method string, req *StockRequest) *StockReply {
	t.Helper()

	var reply StockReply
	err := conn.Invoke(context.Background(), "/"+stockServiceName+"/"+method, req, &reply)
	require.NoError(t, err)
	return &reply
}

func TestGRPC_AddWithdrawSearch(t *testing.T) {
	conn := newGRPCClient(t)

	reply := invoke(t, conn, "Add", &StockRequest{Name: "Widget", Quantity: "10"})
	assert.True(t, reply.Success)
	require.NotNil(t, reply.Item)
	assert.NotZero(t, reply.Item.ID)

	reply = invoke(t, conn, "Withdraw", &StockRequest{Name: "Widget", Quantity: "3"})
	assert.True(t, reply.Success)
	require.NotNil(t, reply.Withdrawal)
	assert.Equal(t, 7, reply.Withdrawal.Remaining)

	reply = invoke(t, conn, "Search", &StockRequest{Name: "Widget"})
	require.NotNil(t, reply.Item)
	assert.Equal(t, 7, reply.Item.Quantity)
	assert.Equal(t, "Item 'Widget' has 7 units in stock.", reply.Notice.Message)
}

func TestGRPC_FailuresInReply(t *testing.T) {
	conn := newGRPCClient(t)

	reply := invoke(t, conn, "Remove", &StockRequest{Name: "Ghost"})
	assert.False(t, reply.Success)
	assert.Equal(t, domain.OutcomeNotFound, reply.Outcome)
	assert.Equal(t, LevelWarning, reply.Notice.Level)

	reply = invoke(t, conn, "Edit", &StockRequest{Name: "Widget", Quantity: "many"})
	assert.False(t, reply.Success)
	assert.Equal(t, domain.OutcomeInvalidInput, reply.Outcome)
}

func TestGRPC_List(t *testing.T) {
	conn := newGRPCClient(t)

	invoke(t, conn, "Add", &StockRequest{Name: "Widget", Quantity: "1"})
	invoke(t, conn, "Add", &StockRequest{Name: "Gadget", Quantity: "2"})
	invoke(t, conn, "Edit", &StockRequest{Name: "Gadget", Quantity: "5", NewName: "Sprocket"})

	reply := invoke(t, conn, "List", &StockRequest{})
	assert.True(t, reply.Success)
	require.Len(t, reply.Items, 2)
	assert.Equal(t, "Sprocket", reply.Items[1].Name)
	assert.Equal(t, 5, reply.Items[1].Quantity)
}
