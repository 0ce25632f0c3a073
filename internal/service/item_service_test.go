package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	errs "reuse/internal/errors"
	"reuse/internal/model"
)

// MockItemRepository is a mock implementation of ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.Item, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func rawPatch(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var patch map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &patch))
	return patch
}

func TestItemService_Create(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Item")).Return(nil)

	svc := NewItemService(mockRepo, nil)

	item, err := svc.Create(context.Background(), CreateItemInput{Title: "Livro de Java", Type: "doacao"}, 9)
	require.NoError(t, err)
	assert.Equal(t, uint(9), item.UserID)
	assert.Equal(t, "Livro de Java", item.Title)
	mockRepo.AssertExpectations(t)
}

func TestItemService_List(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Item{
		{ID: 2, Title: "Teclado mecânico", Type: "troca", UserID: 9, User: model.User{ID: 9, Name: "Demo"}},
		{ID: 1, Title: "Livro de Java", Type: "doacao", UserID: 9, User: model.User{ID: 9, Name: "Demo"}},
	}, nil)

	svc := NewItemService(mockRepo, nil)

	listings, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, uint(2), listings[0].ID)
	assert.Equal(t, model.ItemOwner{ID: 9, Name: "Demo"}, listings[0].User)
	mockRepo.AssertExpectations(t)
}

func TestItemService_Update(t *testing.T) {
	owned := func() *model.Item {
		return &model.Item{ID: 5, Title: "Livro de Java", Type: "doacao", UserID: 9}
	}

	tests := []struct {
		name           string
		callerID       uint
		body           string
		setupMock      func(*MockItemRepository)
		expectedError  error
		expectedFields map[string]interface{}
	}{
		{
			name:     "unknown item",
			callerID: 9,
			body:     `{"title":"Novo título"}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errs.ErrItemNotFound,
		},
		{
			name:     "non-owner gets forbidden even with a malformed payload",
			callerID: 13,
			body:     `{"title":5,"price":"not-a-number"}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
			},
			expectedError: errs.ErrForbidden,
		},
		{
			name:     "title too short",
			callerID: 9,
			body:     `{"title":"x"}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
			},
			expectedError: errs.NewValidation("Título muito curto"),
		},
		{
			name:     "negative price",
			callerID: 9,
			body:     `{"price":-10}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
			},
			expectedError: errs.NewValidation("Preço não pode ser negativo"),
		},
		{
			name:     "bad image url",
			callerID: 9,
			body:     `{"imageUrl":"not a url"}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
			},
			expectedError: errs.NewValidation("URL da imagem inválida"),
		},
		{
			name:     "partial update touches only present fields",
			callerID: 9,
			body:     `{"title":"Livro de Go"}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
				m.On("UpdateFields", mock.Anything, uint(5), mock.Anything).Return(owned(), nil)
			},
			expectedFields: map[string]interface{}{"title": "Livro de Go"},
		},
		{
			name:     "explicit null clears an optional field",
			callerID: 9,
			body:     `{"description":null,"openToTrade":true}`,
			setupMock: func(m *MockItemRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(owned(), nil)
				m.On("UpdateFields", mock.Anything, uint(5), mock.Anything).Return(owned(), nil)
			},
			expectedFields: map[string]interface{}{"description": nil, "open_to_trade": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockItemRepository)
			tt.setupMock(mockRepo)

			svc := NewItemService(mockRepo, nil)

			item, err := svc.Update(context.Background(), 5, tt.callerID, rawPatch(t, tt.body))

			if tt.expectedError != nil {
				assert.Nil(t, item)
				var vErr *errs.ValidationError
				if errors.As(err, &vErr) {
					assert.Equal(t, tt.expectedError.Error(), vErr.Message)
				} else {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				require.NotNil(t, item)

				for _, call := range mockRepo.Calls {
					if call.Method != "UpdateFields" {
						continue
					}
					fields := call.Arguments.Get(2).(map[string]interface{})
					assert.Len(t, fields, len(tt.expectedFields))
					for key := range tt.expectedFields {
						assert.Contains(t, fields, key)
					}
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
