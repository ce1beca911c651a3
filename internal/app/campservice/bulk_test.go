package campservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/campanion/internal/app/campservice"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	organizerstore "github.com/dalemusser/campanion/internal/app/store/organizers"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/domain/models"
	"github.com/dalemusser/campanion/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func startingOn(creator, st string, day time.Time) models.Camp {
	c := testutil.NewCamp(creator, st)
	end := day.AddDate(0, 0, 4)
	c.StartDate = &day
	c.EndDate = &end
	return c
}

func TestBulkArchiveStarted_YesterdayTodayTomorrow(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	yesterday := f.seed(t, startingOn(owner.UID, status.Active, testutil.Day(2024, 7, 9)))
	today := f.seed(t, startingOn(owner.UID, status.Active, testutil.Day(2024, 7, 10)))
	tomorrow := f.seed(t, startingOn(owner.UID, status.Active, testutil.Day(2024, 7, 11)))
	othersStarted := f.seed(t, startingOn(other.UID, status.Active, testutil.Day(2024, 7, 1)))
	draftStarted := f.seed(t, startingOn(owner.UID, status.Draft, testutil.Day(2024, 7, 1)))

	started, err := f.svc.ListStartedActive(ctx, owner)
	if err != nil {
		t.Fatalf("ListStartedActive failed: %v", err)
	}
	var got []string
	for _, v := range started {
		got = append(got, v.ID)
	}
	if diff := cmp.Diff([]string{yesterday.ID, today.ID}, got); diff != "" {
		t.Errorf("started list (-want +got):\n%s", diff)
	}

	report, err := f.svc.BulkArchiveStarted(ctx, owner)
	if err != nil {
		t.Fatalf("BulkArchiveStarted failed: %v", err)
	}
	if report.Attempted != 2 || report.Archived != 2 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}

	want := map[string]string{
		yesterday.ID:     status.Archive,
		today.ID:         status.Archive,
		tomorrow.ID:      status.Active,
		othersStarted.ID: status.Active,
		draftStarted.ID:  status.Draft,
	}
	for id, st := range want {
		c, err := f.camps.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get %s: %v", id, err)
		}
		if c.Status != st {
			t.Errorf("%s: status = %q, want %q", c.StartDate.Format("2006-01-02"), c.Status, st)
		}
	}
}

func TestBulkArchiveStarted_UsesConfiguredZone(t *testing.T) {
	// 02:00 UTC on Jul 11 is still Jul 10 in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	f := newFixture(t, campservice.Options{
		Loc:   ny,
		Clock: func() time.Time { return time.Date(2024, 7, 11, 2, 0, 0, 0, time.UTC) },
	})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	jul11 := time.Date(2024, 7, 11, 0, 0, 0, 0, ny)
	f.seed(t, startingOn(owner.UID, status.Active, jul11))

	report, err := f.svc.BulkArchiveStarted(ctx, owner)
	if err != nil {
		t.Fatalf("BulkArchiveStarted failed: %v", err)
	}
	if report.Attempted != 0 {
		t.Errorf("camp starting tomorrow (local) must not be archived: %+v", report)
	}
}

// flakyStore fails the batch update for the ids in fail.
type flakyStore struct {
	campstore.Store
	fail map[string]bool
}

func (s flakyStore) BatchSetStatus(ctx context.Context, ids []string, st string) []campstore.Outcome {
	out := make([]campstore.Outcome, len(ids))
	for i, id := range ids {
		if s.fail[id] {
			out[i] = campstore.Outcome{ID: id, Err: errors.New("write conflict")}
			continue
		}
		out[i] = campstore.Outcome{ID: id, Err: s.Store.SetStatus(ctx, id, st)}
	}
	return out
}

func TestBulkArchiveStarted_PartialFailure(t *testing.T) {
	mem := campstore.NewMemory()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var ids []string
	for d := 1; d <= 3; d++ {
		c, err := mem.Create(ctx, startingOn(owner.UID, status.Active, testutil.Day(2024, 7, d)))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, c.ID)
	}
	store := flakyStore{Store: mem, fail: map[string]bool{ids[1]: true}}
	core, logs := observer.New(zap.WarnLevel)
	svc := campservice.New(store, organizerstore.NewMemory(), zap.New(core), campservice.Options{
		Clock: func() time.Time { return now },
	})

	report, err := svc.BulkArchiveStarted(ctx, owner)
	if err != nil {
		t.Fatalf("partial failure must not be an error: %v", err)
	}
	want := campservice.BulkReport{Attempted: 3, Archived: 2, Failed: 1}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}

	// The report carries counts only; the failed id is in the warning log.
	warns := logs.FilterMessage("bulk archive: camp not archived").All()
	if len(warns) != 1 {
		t.Fatalf("got %d failure warnings, want 1", len(warns))
	}
	if got := warns[0].ContextMap()["camp_id"]; got != ids[1] {
		t.Errorf("logged camp_id = %v, want %s", got, ids[1])
	}

	failed, _ := mem.Get(ctx, ids[1])
	if failed.Status != status.Active {
		t.Errorf("failed camp status = %q, want active", failed.Status)
	}
}

func TestBulkArchiveStarted_Chunked(t *testing.T) {
	f := newFixture(t, campservice.Options{BatchChunk: 2, BatchConcurrency: 2})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for d := 1; d <= 7; d++ {
		f.seed(t, startingOn(owner.UID, status.Active, testutil.Day(2024, 7, d)))
	}
	report, err := f.svc.BulkArchiveStarted(ctx, owner)
	if err != nil {
		t.Fatalf("BulkArchiveStarted failed: %v", err)
	}
	if report.Attempted != 7 || report.Archived != 7 {
		t.Errorf("report = %+v", report)
	}

	left, _ := f.camps.List(ctx, campstore.Query{Status: status.Active})
	if len(left) != 0 {
		t.Errorf("%d camps still active", len(left))
	}
}

func TestBulkArchiveStarted_AdminOnly(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := f.svc.BulkArchiveStarted(ctx, user); !apperr.IsPermissionDenied(err) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestListPublic(t *testing.T) {
	f := newFixture(t, campservice.Options{PageSize: 2})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := f.seed(t, startingOn(owner.UID, status.Active, testutil.Day(2024, 8, 3)))
	b := f.seed(t, startingOn(other.UID, status.Active, testutil.Day(2024, 8, 1)))
	c := f.seed(t, startingOn(owner.UID, status.Active, testutil.Day(2024, 8, 2)))
	f.seed(t, startingOn(owner.UID, status.Draft, testutil.Day(2024, 8, 1)))
	f.seed(t, startingOn(owner.UID, status.Archive, testutil.Day(2024, 8, 1)))

	l, err := f.svc.ListPublic(ctx, owner, campservice.ListQuery{Page: 1})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if l.Page.TotalItems != 3 || l.Page.TotalPages != 2 || !l.Page.HasNext {
		t.Errorf("page = %+v", l.Page)
	}
	var got []string
	for _, v := range l.Page.Items {
		got = append(got, v.ID)
	}
	if diff := cmp.Diff([]string{b.ID, c.ID}, got); diff != "" {
		t.Errorf("soonest first (-want +got):\n%s", diff)
	}
	if !l.Page.Items[1].Actions.Edit || l.Page.Items[0].Actions.Edit {
		t.Error("actions must follow ownership")
	}

	l, _ = f.svc.ListPublic(ctx, owner, campservice.ListQuery{Page: 2})
	if len(l.Page.Items) != 1 || l.Page.Items[0].ID != a.ID {
		t.Errorf("page 2 = %+v", l.Page.Items)
	}
	if diff := cmp.Diff([]string{"Lake Placid"}, l.Locations); diff != "" {
		t.Errorf("locations (-want +got):\n%s", diff)
	}
}

func TestListMine_LifecycleOrder(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mk := func(st string, age time.Duration) models.Camp {
		c := testutil.NewCamp(owner.UID, st)
		c.CreatedAt = now.Add(-age)
		return f.seed(t, c)
	}
	archived := mk(status.Archive, time.Hour)
	draft := mk(status.Draft, 2*time.Hour)
	activeOld := mk(status.Active, 3*time.Hour)
	activeNew := mk(status.Active, time.Minute)
	f.seed(t, testutil.NewCamp(other.UID, status.Active))

	l, err := f.svc.ListMine(ctx, owner, campservice.ListQuery{Page: 1})
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	var got []string
	for _, v := range l.Page.Items {
		got = append(got, v.ID)
	}
	want := []string{activeNew.ID, activeOld.ID, draft.ID, archived.ID}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lifecycle order (-want +got):\n%s", diff)
	}

	if _, err := f.svc.ListMine(ctx, user, campservice.ListQuery{}); !apperr.IsPermissionDenied(err) {
		t.Errorf("non-admin: expected ErrPermissionDenied, got %v", err)
	}
}

func TestOrganizers(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	o, err := f.svc.CreateOrganizer(ctx, owner, campservice.OrganizerInput{Name: "  Pine   Trails "})
	if err != nil {
		t.Fatalf("CreateOrganizer failed: %v", err)
	}
	if o.Name != "Pine Trails" || o.AvatarURL != models.PlaceholderAvatarURL("Pine Trails") {
		t.Errorf("organizer = %+v", o)
	}

	_, err = f.svc.CreateOrganizer(ctx, other, campservice.OrganizerInput{Name: "PINE TRAILS"})
	if !apperr.IsValidation(err) || apperr.Fields(err)[0].Field != "name" {
		t.Errorf("duplicate: expected validation error on name, got %v", err)
	}
	if _, err := f.svc.CreateOrganizer(ctx, user, campservice.OrganizerInput{Name: "X"}); !apperr.IsPermissionDenied(err) {
		t.Errorf("non-admin: expected ErrPermissionDenied, got %v", err)
	}

	// Camps keep their snapshot after the organizer changes or goes away.
	in := validInput()
	in.OrganizerID = o.ID
	camp, err := f.svc.Create(ctx, owner, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := f.svc.UpdateOrganizer(ctx, other, o.ID, campservice.OrganizerInput{Name: "Pine Trails Co"}); err != nil {
		t.Fatalf("UpdateOrganizer failed: %v", err)
	}
	if err := f.svc.DeleteOrganizer(ctx, owner, o.ID); err != nil {
		t.Fatalf("DeleteOrganizer failed: %v", err)
	}
	stored, _ := f.camps.Get(ctx, camp.ID)
	if stored.OrganizerName != "Pine Trails" {
		t.Errorf("snapshot = %q", stored.OrganizerName)
	}

	list, err := f.svc.ListOrganizers(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("ListOrganizers = %v, %v", list, err)
	}
	if err := f.svc.DeleteOrganizer(ctx, owner, o.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrganizers_Sorted(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, n := range []string{"zeta", "Alpha", "mike"} {
		if _, err := f.svc.CreateOrganizer(ctx, owner, campservice.OrganizerInput{Name: n}); err != nil {
			t.Fatalf("CreateOrganizer(%s): %v", n, err)
		}
	}
	list, _ := f.svc.ListOrganizers(ctx)
	names := make([]string, len(list))
	for i, o := range list {
		names[i] = o.Name
	}
	if diff := cmp.Diff([]string{"Alpha", "mike", "zeta"}, names); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}
