package db

import "context"

// KeychainInterface synchronizes exclusive sections between processes,
// backed by row locks in the database.
type KeychainInterface interface {
	// Lock locks an entry by name and executes the critical section.
	//
	// # Args
	//
	// - ctx (context.Context): The context of the operation.
	//
	// - name (string): The name of the lock.
	//
	// - criticalSection (func(context.Context) error): The critical section to execute.
	// If the critical section returns an error, the transaction will be rolled back.
	//
	// # Returns
	//
	// - error: An error if the operation failed.
	Lock(ctx context.Context, name string, criticalSection func(ctx context.Context) error) error
}
