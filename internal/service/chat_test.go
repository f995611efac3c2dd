package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"openrouter-chat/internal/openrouter"
	"openrouter-chat/internal/service"
	svcmocks "openrouter-chat/internal/service/mocks"
	"openrouter-chat/internal/storage"
	storemocks "openrouter-chat/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewChatService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := svcmocks.NewMockCompletionClient(ctrl)
	mockCalls := storemocks.NewMockCallStore(ctrl)

	svc := service.NewChatService(mockClient, mockCalls, "deepseek/deepseek-chat")
	if svc == nil {
		t.Fatal("NewChatService() returned nil")
	}
}

func TestChatService_Complete(t *testing.T) {
	tests := []struct {
		name         string
		req          service.CompletionRequest
		mockSetup    func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore)
		wantErr      bool
		wantReply    string
		checkErrType func(error) bool
		checkRecord  func(*storage.CallRecord) bool
	}{
		{
			name: "successful completion",
			req: service.CompletionRequest{
				Messages: []string{"Hello, world!"},
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {
				client.EXPECT().
					GetCompletion(gomock.Any(), []openrouter.ChatMessage{{Content: "Hello, world!"}}, openrouter.Params{}).
					Return("Hi there!", nil)
			},
			wantErr:   false,
			wantReply: "Hi there!",
			checkRecord: func(rec *storage.CallRecord) bool {
				return rec.Status == storage.CallStatusSuccess &&
					rec.Model == "default-model" && rec.Error == ""
			},
		},
		{
			name: "model override forwarded and recorded",
			req: service.CompletionRequest{
				Messages:    []string{"Hello"},
				Model:       "custom-model",
				Temperature: 1.1,
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {
				client.EXPECT().
					GetCompletion(gomock.Any(), gomock.Any(), openrouter.Params{Model: "custom-model", Temperature: 1.1}).
					Return("ok", nil)
			},
			wantErr:   false,
			wantReply: "ok",
			checkRecord: func(rec *storage.CallRecord) bool {
				return rec.Model == "custom-model"
			},
		},
		{
			name: "empty message list",
			req: service.CompletionRequest{
				Messages: nil,
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {
				// No client call, no record
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				var validationErr *service.ValidationError
				return errors.As(err, &validationErr) && validationErr.Field == "messages"
			},
		},
		{
			name: "empty message content",
			req: service.CompletionRequest{
				Messages: []string{"fine", ""},
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {},
			wantErr:   true,
			checkErrType: func(err error) bool {
				var validationErr *service.ValidationError
				return errors.As(err, &validationErr)
			},
		},
		{
			name: "remote error maps to ErrNoResult",
			req: service.CompletionRequest{
				Messages: []string{"Hello"},
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {
				client.EXPECT().
					GetCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", &openrouter.RemoteError{StatusCode: 500, Body: "internal server error"})
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrNoResult)
			},
			checkRecord: func(rec *storage.CallRecord) bool {
				return rec.Status == storage.CallStatusNoResult && rec.Error != ""
			},
		},
		{
			name: "shape error maps to ErrNoResult",
			req: service.CompletionRequest{
				Messages: []string{"Hello"},
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {
				client.EXPECT().
					GetCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", &openrouter.ShapeError{Reason: "no choices in response"})
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrNoResult)
			},
		},
		{
			name: "transport exhaustion maps to ErrExternalService",
			req: service.CompletionRequest{
				Messages: []string{"Hello"},
			},
			mockSetup: func(client *svcmocks.MockCompletionClient, calls *storemocks.MockCallStore) {
				client.EXPECT().
					GetCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", &openrouter.TransportError{Err: errors.New("connection reset")})
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, service.ErrExternalService)
			},
			checkRecord: func(rec *storage.CallRecord) bool {
				return rec.Status == storage.CallStatusTransport
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := svcmocks.NewMockCompletionClient(ctrl)
			mockCalls := storemocks.NewMockCallStore(ctrl)

			var recorded *storage.CallRecord
			mockCalls.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, rec *storage.CallRecord) error {
					recorded = rec
					return nil
				}).AnyTimes()

			tt.mockSetup(mockClient, mockCalls)

			svc := service.NewChatService(mockClient, mockCalls, "default-model")
			resp, err := svc.Complete(context.Background(), tt.req)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Complete() expected error, got nil")
					return
				}
				if tt.checkErrType != nil && !tt.checkErrType(err) {
					t.Errorf("Complete() error type mismatch: %v", err)
				}
			} else {
				if err != nil {
					t.Errorf("Complete() unexpected error: %v", err)
					return
				}
				if resp.Reply != tt.wantReply {
					t.Errorf("Complete() reply = %v, want %v", resp.Reply, tt.wantReply)
				}
			}

			if tt.checkRecord != nil {
				if recorded == nil {
					t.Fatal("Complete() did not record the call")
				}
				if !tt.checkRecord(recorded) {
					t.Errorf("Complete() recorded call mismatch: %+v", recorded)
				}
			}
		})
	}
}

func TestChatService_Complete_NilCallStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := svcmocks.NewMockCompletionClient(ctrl)
	mockClient.EXPECT().
		GetCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("reply", nil)

	svc := service.NewChatService(mockClient, nil, "default-model")
	resp, err := svc.Complete(context.Background(), service.CompletionRequest{Messages: []string{"hi"}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Reply != "reply" {
		t.Errorf("Complete() reply = %q, want reply", resp.Reply)
	}
}

func TestChatService_Complete_RecordFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := svcmocks.NewMockCompletionClient(ctrl)
	mockClient.EXPECT().
		GetCompletion(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("reply", nil)

	mockCalls := storemocks.NewMockCallStore(ctrl)
	mockCalls.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	svc := service.NewChatService(mockClient, mockCalls, "default-model")
	resp, err := svc.Complete(context.Background(), service.CompletionRequest{Messages: []string{"hi"}})
	if err != nil {
		t.Fatalf("Complete() error = %v, audit failures must not surface", err)
	}
	if resp.Reply != "reply" {
		t.Errorf("Complete() reply = %q, want reply", resp.Reply)
	}
}
