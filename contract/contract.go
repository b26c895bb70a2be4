//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
)

// ISupervisor owns the lifecycle of the ledger's background workers
// (value log GC, health monitoring).
type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Stays focused on one job and lets the supervisor handle crashes
// Returning nil ends it for good, an error or a panic triggers a restart
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to read the worker's type name.
// The supervisor logs it on start, crash and stop, so workers never have
// to carry a name of their own.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
