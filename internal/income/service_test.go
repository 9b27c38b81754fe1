package income

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrack/fintrack/internal/category"
	"github.com/fintrack/fintrack/internal/uid"
)

func setupService(t *testing.T, owner uid.UID) (*Service, category.Category) {
	t.Helper()
	cats := category.NewService(category.NewMemoryRepository())
	cat, err := cats.Create(context.Background(), owner, category.CreateInput{
		Name: "Earnings", Kind: category.KindIncome,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return NewService(NewMemoryRepository(), cats), cat
}

func TestCreateAndList(t *testing.T) {
	owner := uid.New()
	svc, cat := setupService(t, owner)
	ctx := context.Background()

	inc, err := svc.Create(ctx, owner, Input{
		CategoryID:  cat.ID,
		Source:      SourceSalary,
		AmountCents: 350000,
		Frequency:   FrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inc.ReceivedAt.IsZero() {
		t.Fatal("ReceivedAt should default to now")
	}

	incs, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(incs) != 1 || incs[0].ID != inc.ID {
		t.Fatalf("unexpected list result: %+v", incs)
	}
}

func TestCreateValidation(t *testing.T) {
	owner := uid.New()
	svc, cat := setupService(t, owner)
	ctx := context.Background()

	cases := []struct {
		name  string
		input Input
		want  error
	}{
		{"bad source", Input{CategoryID: cat.ID, Source: Source("Lottery"), AmountCents: 100, Frequency: FrequencyOneTime}, ErrInvalidSource},
		{"bad frequency", Input{CategoryID: cat.ID, Source: SourceBonus, AmountCents: 100, Frequency: Frequency("Hourly")}, ErrInvalidFrequency},
		{"zero amount", Input{CategoryID: cat.ID, Source: SourceBonus, AmountCents: 0, Frequency: FrequencyOneTime}, ErrInvalidAmount},
		{"foreign category", Input{CategoryID: uid.New(), Source: SourceBonus, AmountCents: 100, Frequency: FrequencyOneTime}, ErrUnknownCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, owner, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	owner := uid.New()
	svc, cat := setupService(t, owner)
	ctx := context.Background()

	inc, err := svc.Create(ctx, owner, Input{
		CategoryID: cat.ID, Source: SourceFreelance, AmountCents: 50000, Frequency: FrequencyOneTime,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, owner, inc.ID, Input{
		CategoryID: cat.ID, Source: SourceFreelance, AmountCents: 75000, Frequency: FrequencyOneTime, ReceivedAt: inc.ReceivedAt,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AmountCents != 75000 {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.Delete(ctx, owner, inc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, owner, inc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete error = %v, want ErrNotFound", err)
	}
}
