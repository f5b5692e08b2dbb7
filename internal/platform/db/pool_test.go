package db

import (
	"context"
	"testing"
)

func TestTxFromContext_Nil(t *testing.T) {
	ctx := context.Background()
	if tx := TxFromContext(ctx); tx != nil {
		t.Errorf("expected nil transaction from bare context, got %v", tx)
	}
}

func TestTxFromContext_WithWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), DBTxKey, "not-a-tx")
	if tx := TxFromContext(ctx); tx != nil {
		t.Errorf("expected nil transaction for wrong value type, got %v", tx)
	}
}

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "://not-a-url", 10, 2)
	if err == nil {
		t.Fatal("expected error for malformed database url")
	}
}
