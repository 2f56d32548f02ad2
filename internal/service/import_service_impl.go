package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/importer"
	"github.com/alexanderramin/pomotodo/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportTodos(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportTodosFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"todos": len(schema.Todos)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-todos",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	todos, err := importer.Convert(schema, startedAt)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		seqs := repository.NewSQLiteSequenceRepo(tx)
		repo := repository.NewSQLiteTodoRepo(tx)
		for _, todo := range todos {
			seq, err := seqs.NextTodoSeq(ctx)
			if err != nil {
				return err
			}
			todo.Seq = seq
			if err := repo.Create(ctx, todo); err != nil {
				return fmt.Errorf("creating to-do %q: %w", todo.Label, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{Todos: todos}
	for _, todo := range todos {
		if todo.Done {
			result.Completed++
		}
	}
	fields["completed"] = result.Completed
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
