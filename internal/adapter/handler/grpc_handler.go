package handler

import (
	"context"
	"encoding/json"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/core/service"
)

const stockServiceName = "stock.v1.StockService"

// jsonCodec lets clients talk to StockService without generated protobuf
// types. Clients select it with grpc.CallContentSubtype("json").
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return "json" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type StockRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	NewName  string `json:"new_name,omitempty"`
}

type StockReply struct {
	Success    bool               `json:"success"`
	Outcome    domain.Outcome     `json:"outcome"`
	Notice     Notice             `json:"notice"`
	Item       *domain.StockItem  `json:"item,omitempty"`
	Items      []domain.StockItem `json:"items,omitempty"`
	Withdrawal *domain.Withdrawal `json:"withdrawal,omitempty"`
}

type StockServiceServer interface {
	Add(context.Context, *StockRequest) (*StockReply, error)
	Remove(context.Context, *StockRequest) (*StockReply, error)
	Withdraw(context.Context, *StockRequest) (*StockReply, error)
	Edit(context.Context, *StockRequest) (*StockReply, error)
	Search(context.Context, *StockRequest) (*StockReply, error)
	List(context.Context, *StockRequest) (*StockReply, error)
}

type GRPCHandler struct {
	inventory *service.InventoryService
}

func NewGRPCHandler(inventory *service.InventoryService) *GRPCHandler {
	return &GRPCHandler{inventory: inventory}
}

func RegisterStockServiceServer(s grpc.ServiceRegistrar, srv StockServiceServer) {
	s.RegisterService(&stockServiceDesc, srv)
}

// Business failures are reported in the reply; only transport problems
// surface as RPC errors.
func (h *GRPCHandler) Add(ctx context.Context, req *StockRequest) (*StockReply, error) {
	item, err := h.inventory.Add(ctx, service.StockForm{Name: req.Name, Quantity: req.Quantity})
	reply := newReply(AddNotice(req.Name, item, err), err)
	if err == nil {
		reply.Item = &item
	}
	return reply, nil
}

func (h *GRPCHandler) Remove(ctx context.Context, req *StockRequest) (*StockReply, error) {
	_, err := h.inventory.Remove(ctx, req.Name)
	return newReply(RemoveNotice(req.Name, err), err), nil
}

func (h *GRPCHandler) Withdraw(ctx context.Context, req *StockRequest) (*StockReply, error) {
	wd, err := h.inventory.Withdraw(ctx, service.StockForm{Name: req.Name, Quantity: req.Quantity})
	reply := newReply(WithdrawNotice(req.Name, wd, err), err)
	if err == nil {
		reply.Withdrawal = &wd
	}
	return reply, nil
}

func (h *GRPCHandler) Edit(ctx context.Context, req *StockRequest) (*StockReply, error) {
	e, err := h.inventory.Edit(ctx, service.StockForm{Name: req.Name, Quantity: req.Quantity, NewName: req.NewName})
	reply := newReply(EditNotice(req.Name, e, err), err)
	if err == nil {
		reply.Item = &e.Item
	}
	return reply, nil
}

func (h *GRPCHandler) Search(ctx context.Context, req *StockRequest) (*StockReply, error) {
	item, err := h.inventory.Search(ctx, req.Name)
	reply := newReply(SearchNotice(req.Name, item, err), err)
	if err == nil {
		reply.Item = &item
	}
	return reply, nil
}

func (h *GRPCHandler) List(ctx context.Context, _ *StockRequest) (*StockReply, error) {
	items, err := h.inventory.List(ctx)
	var notice Notice
	if err != nil {
		notice = ListNotice(err)
	}
	reply := newReply(notice, err)
	reply.Items = items
	return reply, nil
}

func newReply(notice Notice, err error) *StockReply {
	if notice.Level == LevelError {
		log.Printf("grpc: %v", err)
	}
	return &StockReply{
		Success: err == nil,
		Outcome: service.OutcomeOf(err),
		Notice:  notice,
	}
}

var stockServiceDesc = grpc.ServiceDesc{
	ServiceName: stockServiceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Add", StockServiceServer.Add),
		unaryMethod("Remove", StockServiceServer.Remove),
		unaryMethod("Withdraw", StockServiceServer.Withdraw),
		unaryMethod("Edit", StockServiceServer.Edit),
		unaryMethod("Search", StockServiceServer.Search),
		unaryMethod("List", StockServiceServer.List),
	},
	Streams: []grpc.StreamDesc{},
}

func unaryMethod(name string, call func(StockServiceServer, context.Context, *StockRequest) (*StockReply, error)) grpc.MethodDesc {
	fullMethod := "/" + stockServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(StockRequest)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StockServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(StockServiceServer), ctx, req.(*StockRequest))
			})
		},
	}
}
