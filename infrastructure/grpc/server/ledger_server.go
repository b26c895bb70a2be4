package server

import (
	"context"

	"message-ledger/auth"
	"message-ledger/domain"
	"message-ledger/domain/ledger"
	"message-ledger/errors"
	pb "message-ledger/proto/ledger"
	"message-ledger/services"

	"github.com/samber/lo"
)

type LedgerServer struct {
	pb.UnimplementedLedgerServiceServer
	messagingService services.IMessagingService
	maxContentLength int
}

func NewLedgerServer(messagingService services.IMessagingService, maxContentLength int) *LedgerServer {
	return &LedgerServer{messagingService: messagingService, maxContentLength: maxContentLength}
}

func (s *LedgerServer) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.SendMessageResponse, error) {
	err := auth.ValidateSend(auth.SendRequest{
		Sender:   req.GetSender(),
		Receiver: req.GetReceiver(),
		Content:  req.GetContent(),
	}, s.maxContentLength)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}

	id, err := s.messagingService.SendMessage(ctx, ledger.SendMessageCommand{
		Sender:   domain.Identity(req.Sender),
		Receiver: domain.Identity(req.Receiver),
		Content:  req.Content,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.SendMessageResponse{Id: id}, nil
}

func (s *LedgerServer) GetMessage(ctx context.Context, req *pb.GetMessageRequest) (*pb.GetMessageResponse, error) {
	if err := auth.ValidateIdentity(req.Requester); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	message, err := s.messagingService.GetMessage(ctx, ledger.GetMessageCommand{
		ID:        req.Id,
		Requester: domain.Identity(req.Requester),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetMessageResponse{Message: toMessageResponse(message)}, nil
}

func (s *LedgerServer) MarkAsRead(ctx context.Context, req *pb.MarkAsReadRequest) (*pb.MarkAsReadResponse, error) {
	if err := auth.ValidateIdentity(req.Reader); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	err := s.messagingService.MarkAsRead(ctx, ledger.MarkAsReadCommand{
		ID:     req.Id,
		Reader: domain.Identity(req.Reader),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.MarkAsReadResponse{}, nil
}

func (s *LedgerServer) GetMessageCount(ctx context.Context, _ *pb.GetMessageCountRequest) (*pb.GetMessageCountResponse, error) {
	count, err := s.messagingService.GetMessageCount(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetMessageCountResponse{Count: count}, nil
}

func (s *LedgerServer) ListInbox(ctx context.Context, req *pb.ListInboxRequest) (*pb.ListInboxResponse, error) {
	if err := auth.ValidateIdentity(req.Receiver); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	messages, cursor, err := s.messagingService.ListInbox(ctx, ledger.ListInboxCommand{
		Receiver: domain.Identity(req.Receiver),
		Cursor:   req.Cursor,
		Limit:    int(req.Limit),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.ListInboxResponse{
		Messages: lo.Map(messages, func(item domain.Message, _ int) *pb.Message {
			return toMessageResponse(item)
		}),
		Cursor: cursor,
	}, nil
}

func toMessageResponse(message domain.Message) *pb.Message {
	return &pb.Message{
		Id:        message.ID,
		Sender:    message.Sender.String(),
		Receiver:  message.Receiver.String(),
		Content:   message.Content,
		Timestamp: message.Timestamp,
		IsRead:    message.IsRead,
	}
}
