package campservice_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	organizerstore "github.com/dalemusser/campanion/internal/app/store/organizers"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/domain/models"
	"github.com/dalemusser/campanion/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	now   = time.Date(2024, 7, 10, 15, 0, 0, 0, time.UTC)
	owner = camppolicy.Viewer{UID: "owner-1", Email: "owner@example.com", IsAdmin: true}
	other = camppolicy.Viewer{UID: "admin-2", Email: "other@example.com", IsAdmin: true}
	user  = camppolicy.Viewer{UID: "user-3", Email: "user@example.com"}
)

type fixture struct {
	svc   *campservice.Service
	camps *campstore.MemoryStore
	orgs  *organizerstore.MemoryStore
}

func newFixture(t *testing.T, opts campservice.Options) fixture {
	t.Helper()
	camps := campstore.NewMemory()
	orgs := organizerstore.NewMemory()
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return now }
	}
	return fixture{
		svc:   campservice.New(camps, orgs, zap.NewNop(), opts),
		camps: camps,
		orgs:  orgs,
	}
}

func (f fixture) seed(t *testing.T, c models.Camp) models.Camp {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	created, err := f.camps.Create(ctx, c)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}

func validInput() campservice.CampInput {
	return campservice.CampInput{
		Name:        "Forest Week",
		Description: "Trails & <b>tents</b>",
		Location:    "Asheville",
		StartDate:   "2024-08-01",
		EndDate:     "2024-08-05",
		Price:       300,
		Activities:  []string{"hiking", " Hiking ", "archery"},
		Status:      status.Active,
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := f.svc.Create(ctx, owner, validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if v.ID == "" || v.CreatorID != owner.UID || v.CreationMode != models.CreationModeAdmin {
		t.Errorf("unexpected camp: %+v", v.Camp)
	}
	if v.ImageURL != models.DefaultCampImageURL {
		t.Errorf("ImageURL = %q, want default", v.ImageURL)
	}
	if diff := cmp.Diff([]string{"hiking", "archery"}, v.Activities); diff != "" {
		t.Errorf("activities (-want +got):\n%s", diff)
	}
	if !v.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", v.CreatedAt, now)
	}
	if v.DisplayStatus != status.DisplayActive || !v.Actions.Edit {
		t.Errorf("view = %v %+v", v.DisplayStatus, v.Actions)
	}
	if f.camps.Len() != 1 {
		t.Errorf("store has %d camps", f.camps.Len())
	}
}

func TestCreate_Authorization(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := f.svc.Create(ctx, user, validInput()); !apperr.IsPermissionDenied(err) {
		t.Errorf("non-admin: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := f.svc.Create(ctx, camppolicy.Anonymous(), validInput()); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if f.camps.Len() != 0 {
		t.Error("nothing should be written")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*campservice.CampInput)
		field string
	}{
		{"missing name", func(in *campservice.CampInput) { in.Name = "" }, "name"},
		{"negative price", func(in *campservice.CampInput) { in.Price = -1 }, "price"},
		{"end before start", func(in *campservice.CampInput) { in.EndDate = "2024-07-30" }, "endDate"},
		{"bad date", func(in *campservice.CampInput) { in.StartDate = "next week" }, "startDate"},
		{"bad image url", func(in *campservice.CampInput) { in.ImageURL = "ftp://x" }, "imageUrl"},
		{"archived start", func(in *campservice.CampInput) { in.Status = status.Archive }, "status"},
		{"unknown status", func(in *campservice.CampInput) { in.Status = "live" }, "status"},
		{"unknown organizer", func(in *campservice.CampInput) { in.OrganizerID = "nope" }, "organizerId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, campservice.Options{})
			ctx, cancel := testutil.TestContext()
			defer cancel()

			in := validInput()
			tt.edit(&in)
			_, err := f.svc.Create(ctx, owner, in)
			if !apperr.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			found := false
			for _, fe := range apperr.Fields(err) {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected field %q in %+v", tt.field, apperr.Fields(err))
			}
			if f.camps.Len() != 0 {
				t.Error("invalid camp must not be written")
			}
		})
	}
}

func TestCreate_DefaultsToDraft(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := validInput()
	in.Status = ""
	v, err := f.svc.Create(ctx, owner, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if v.Status != status.Draft {
		t.Errorf("Status = %q, want draft", v.Status)
	}
}

func TestDelete_NonCreatorRefused(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := f.seed(t, testutil.NewCamp(owner.UID, status.Active))

	for _, actor := range []camppolicy.Viewer{other, user} {
		err := f.svc.Delete(ctx, actor, c.ID)
		if !apperr.IsPermissionDenied(err) {
			t.Errorf("%s: expected ErrPermissionDenied, got %v", actor.UID, err)
		}
	}
	if f.camps.Len() != 1 {
		t.Fatalf("store changed: %d camps", f.camps.Len())
	}
	got, err := f.camps.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(c, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("camp changed (-want +got):\n%s", diff)
	}

	if err := f.svc.Delete(ctx, owner, c.ID); err != nil {
		t.Fatalf("owner Delete failed: %v", err)
	}
	if f.camps.Len() != 0 {
		t.Error("expected camp deleted")
	}
	if err := f.svc.Delete(ctx, owner, c.ID); !apperr.IsNotFound(err) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	src := testutil.NewCamp(owner.UID, status.Active)
	src.CreatedAt = now.Add(-48 * time.Hour)
	src.UpdatedAt = src.CreatedAt
	orig := f.seed(t, src)

	dup, err := f.svc.Copy(ctx, owner, orig.ID)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if dup.ID == "" || dup.ID == orig.ID {
		t.Errorf("copy must get a fresh id, got %q", dup.ID)
	}
	if dup.Name != orig.Name+" (Copy)" {
		t.Errorf("Name = %q", dup.Name)
	}
	if dup.Status != status.Draft {
		t.Errorf("Status = %q, want draft", dup.Status)
	}
	if dup.CreatorID != owner.UID || !dup.CreatedAt.Equal(now) {
		t.Errorf("CreatorID/CreatedAt = %q/%v", dup.CreatorID, dup.CreatedAt)
	}
	ignore := cmpopts.IgnoreFields(models.Camp{}, "ID", "Name", "Status", "CreatorID", "CreatedAt", "UpdatedAt")
	if diff := cmp.Diff(orig, dup.Camp, ignore); diff != "" {
		t.Errorf("copied fields differ (-orig +copy):\n%s", diff)
	}

	after, err := f.camps.Get(ctx, orig.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(orig, after); diff != "" {
		t.Errorf("original changed (-want +got):\n%s", diff)
	}
	if f.camps.Len() != 2 {
		t.Errorf("store has %d camps, want 2", f.camps.Len())
	}
}

func TestCopy_NonOwnerRefused(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := f.seed(t, testutil.NewCamp(owner.UID, status.Active))
	if _, err := f.svc.Copy(ctx, other, c.ID); !apperr.IsPermissionDenied(err) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
	if f.camps.Len() != 1 {
		t.Error("no copy should be written")
	}
}

func TestEdit(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org, err := f.orgs.Create(ctx, testutil.NewOrganizer("Blue Ridge Camps"))
	if err != nil {
		t.Fatalf("organizer: %v", err)
	}
	orig := f.seed(t, testutil.NewCamp(owner.UID, status.Draft))

	in := validInput()
	in.OrganizerID = org.ID
	in.Status = status.Archive
	v, err := f.svc.Edit(ctx, owner, orig.ID, in)
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if v.Name != "Forest Week" || v.Status != status.Archive {
		t.Errorf("unexpected camp: %+v", v.Camp)
	}
	if v.OrganizerName != "Blue Ridge Camps" || v.OrganizerLink != org.Link {
		t.Errorf("organizer snapshot = %q %q", v.OrganizerName, v.OrganizerLink)
	}
	if v.CreatorID != orig.CreatorID || v.CreationMode != orig.CreationMode || !v.CreatedAt.Equal(orig.CreatedAt) {
		t.Error("immutable fields changed")
	}

	stored, _ := f.camps.Get(ctx, orig.ID)
	if stored.Name != "Forest Week" || stored.StartDate == nil || stored.StartDate.Format("2006-01-02") != "2024-08-01" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestEdit_EmptyStatusKeepsCurrent(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orig := f.seed(t, testutil.NewCamp(owner.UID, status.Active))
	in := validInput()
	in.Status = ""
	v, err := f.svc.Edit(ctx, owner, orig.ID, in)
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if v.Status != status.Active {
		t.Errorf("Status = %q, want active", v.Status)
	}
}

func TestEdit_InvalidDatesAbortWrite(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orig := f.seed(t, testutil.NewCamp(owner.UID, status.Active))
	in := validInput()
	in.StartDate, in.EndDate = "2024-09-10", "2024-09-01"

	_, err := f.svc.Edit(ctx, owner, orig.ID, in)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	after, _ := f.camps.Get(ctx, orig.ID)
	if diff := cmp.Diff(orig, after); diff != "" {
		t.Errorf("camp changed (-want +got):\n%s", diff)
	}
}

func TestEdit_NonOwnerRefused(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := f.seed(t, testutil.NewCamp(owner.UID, status.Active))
	if _, err := f.svc.Edit(ctx, other, c.ID, validInput()); !apperr.IsPermissionDenied(err) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := f.svc.Edit(ctx, owner, "missing", validInput()); !apperr.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestArchive(t *testing.T) {
	f := newFixture(t, campservice.Options{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := f.seed(t, testutil.NewCamp(owner.UID, status.Active))
	if err := f.svc.Archive(ctx, other, c.ID); !apperr.IsPermissionDenied(err) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
	if err := f.svc.Archive(ctx, owner, c.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	got, _ := f.camps.Get(ctx, c.ID)
	if got.Status != status.Archive {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestGet_DetailPolicy(t *testing.T) {
	tests := []struct {
		policy camppolicy.DetailPolicy
		viewer camppolicy.Viewer
		ok     bool
	}{
		{camppolicy.DetailAdmin, owner, true},
		{camppolicy.DetailAdmin, other, true},
		{camppolicy.DetailAdmin, user, false},
		{camppolicy.DetailAdmin, camppolicy.Anonymous(), false},
		{camppolicy.DetailOwner, owner, true},
		{camppolicy.DetailOwner, other, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy)+"/"+tt.viewer.UID, func(t *testing.T) {
			f := newFixture(t, campservice.Options{DetailPolicy: tt.policy})
			ctx, cancel := testutil.TestContext()
			defer cancel()

			c := f.seed(t, testutil.NewCamp(owner.UID, status.Draft))
			v, err := f.svc.Get(ctx, tt.viewer, c.ID)
			if tt.ok {
				if err != nil {
					t.Fatalf("Get failed: %v", err)
				}
				if v.Actions.Any() != camppolicy.IsOwner(c, tt.viewer) {
					t.Errorf("actions = %+v", v.Actions)
				}
				return
			}
			if !apperr.IsNotFound(err) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestGet_StrictStatus(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lenient := newFixture(t, campservice.Options{})
	c := lenient.seed(t, testutil.NewCamp(owner.UID, "paused"))
	v, err := lenient.svc.Get(ctx, owner, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v.DisplayStatus != status.DisplayDraft {
		t.Errorf("DisplayStatus = %v, want draft", v.DisplayStatus)
	}

	strict := newFixture(t, campservice.Options{StrictStatus: true})
	c = strict.seed(t, testutil.NewCamp(owner.UID, "paused"))
	if _, err := strict.svc.Get(ctx, owner, c.ID); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
