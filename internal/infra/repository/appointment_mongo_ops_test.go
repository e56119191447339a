package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
)

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func deleted(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
}

// commandTarget returns the collection a started command addressed.
func commandTarget(t *testing.T, ev *event.CommandStartedEvent) string {
	t.Helper()
	v, err := ev.Command.LookupErr(ev.CommandName)
	if err != nil {
		t.Fatalf("%s: no target collection: %v", ev.CommandName, err)
	}
	return v.StringValue()
}

func findFilter(t *testing.T, ev *event.CommandStartedEvent) bson.M {
	t.Helper()
	var cmd struct {
		Filter bson.M `bson:"filter"`
	}
	if err := bson.Unmarshal(ev.Command, &cmd); err != nil {
		t.Fatal(err)
	}
	return cmd.Filter
}

func deleteFilter(t *testing.T, ev *event.CommandStartedEvent) bson.M {
	t.Helper()
	var cmd struct {
		Deletes []struct {
			Q bson.M `bson:"q"`
		} `bson:"deletes"`
	}
	if err := bson.Unmarshal(ev.Command, &cmd); err != nil {
		t.Fatal(err)
	}
	if len(cmd.Deletes) != 1 {
		t.Fatalf("expected one delete statement, got %d", len(cmd.Deletes))
	}
	return cmd.Deletes[0].Q
}

func inList(t *testing.T, filter bson.M, field string) bson.A {
	t.Helper()
	cond, ok := filter[field].(bson.M)
	if !ok {
		t.Fatalf("%s: expected an operator document, got %#v", field, filter[field])
	}
	list, ok := cond["$in"].(bson.A)
	if !ok {
		t.Fatalf("%s: expected $in list, got %#v", field, cond)
	}
	return list
}

// --------------------------------------------------
// Cascades
// --------------------------------------------------

func TestDeleteByParticipant(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("removes comments then appointments", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)
		a1, a2 := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "careflow.appointments", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: a1}},
				bson.D{{Key: "_id", Value: a2}},
			),
			deleted(3),
			deleted(2),
		)

		n, err := repo.DeleteByParticipant(context.Background(), "u1")
		if err != nil {
			mt.Fatal(err)
		}
		if n != 2 {
			mt.Fatalf("expected 2 appointments removed, got %d", n)
		}

		events := mt.GetAllStartedEvents()
		if len(events) != 3 {
			mt.Fatalf("expected find + 2 deletes, got %d commands", len(events))
		}

		// find: patient or doctor
		find := events[0]
		if find.CommandName != "find" || commandTarget(mt.T, find) != "appointments" {
			mt.Fatalf("unexpected first command %s", find.CommandName)
		}
		or, ok := findFilter(mt.T, find)["$or"].(bson.A)
		if !ok || len(or) != 2 {
			mt.Fatalf("expected $or with two branches, got %#v", findFilter(mt.T, find))
		}
		if or[0].(bson.M)["patient_id"] != "u1" || or[1].(bson.M)["doctor_id"] != "u1" {
			mt.Fatalf("unexpected $or branches: %#v", or)
		}

		// comments first, keyed by hex string
		comments := events[1]
		if comments.CommandName != "delete" || commandTarget(mt.T, comments) != "comments" {
			mt.Fatalf("expected comments delete second, got %s on %s", comments.CommandName, commandTarget(mt.T, comments))
		}
		hexes := inList(mt.T, deleteFilter(mt.T, comments), "appointment_id")
		if len(hexes) != 2 || hexes[0] != a1.Hex() || hexes[1] != a2.Hex() {
			mt.Fatalf("unexpected comment ids: %#v", hexes)
		}

		// then the appointments, keyed by ObjectID
		apps := events[2]
		if apps.CommandName != "delete" || commandTarget(mt.T, apps) != "appointments" {
			mt.Fatalf("expected appointments delete last, got %s", apps.CommandName)
		}
		ids := inList(mt.T, deleteFilter(mt.T, apps), "_id")
		if len(ids) != 2 || ids[0] != a1 || ids[1] != a2 {
			mt.Fatalf("unexpected appointment ids: %#v", ids)
		}
	})

	mt.Run("no appointments means no deletes", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "careflow.appointments", mtest.FirstBatch))

		n, err := repo.DeleteByParticipant(context.Background(), "u1")
		if err != nil || n != 0 {
			mt.Fatalf("expected 0, nil; got %d, %v", n, err)
		}
		if events := mt.GetAllStartedEvents(); len(events) != 1 {
			mt.Fatalf("expected only the find, got %d commands", len(events))
		}
	})
}

func TestDeleteAppointment(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("comments before appointment", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(deleted(4), deleted(1))

		if err := repo.Delete(context.Background(), id); err != nil {
			mt.Fatal(err)
		}

		events := mt.GetAllStartedEvents()
		if len(events) != 2 {
			mt.Fatalf("expected 2 commands, got %d", len(events))
		}
		if commandTarget(mt.T, events[0]) != "comments" || deleteFilter(mt.T, events[0])["appointment_id"] != id.Hex() {
			mt.Fatalf("unexpected comments delete: %v", events[0].Command)
		}
		if commandTarget(mt.T, events[1]) != "appointments" || deleteFilter(mt.T, events[1])["_id"] != id {
			mt.Fatalf("unexpected appointment delete: %v", events[1].Command)
		}
	})

	mt.Run("missing appointment", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)
		mt.AddMockResponses(deleted(0), deleted(0))

		if err := repo.Delete(context.Background(), primitive.NewObjectID()); !errors.Is(err, domain.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func TestCommentsFor(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("groups by appointment", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "careflow.comments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "appointment_id", Value: "a1"}, {Key: "content", Value: "one"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "appointment_id", Value: "a1"}, {Key: "content", Value: "two"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "appointment_id", Value: "a2"}, {Key: "content", Value: "three"}},
		))

		out, err := repo.CommentsFor(context.Background(), []string{"a1", "a2", "a3"})
		if err != nil {
			mt.Fatal(err)
		}
		if len(out["a1"]) != 2 || len(out["a2"]) != 1 || len(out["a3"]) != 0 {
			mt.Fatalf("unexpected grouping: %v", out)
		}
		if out["a1"][0].Content != "one" || out["a1"][1].Content != "two" {
			mt.Fatalf("order not preserved: %v", out["a1"])
		}

		ids := inList(mt.T, findFilter(mt.T, mt.GetStartedEvent()), "appointment_id")
		if len(ids) != 3 || ids[0] != "a1" {
			mt.Fatalf("unexpected $in: %#v", ids)
		}
	})

	mt.Run("no ids skips the query", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)

		out, err := repo.CommentsFor(context.Background(), nil)
		if err != nil || len(out) != 0 {
			mt.Fatalf("expected empty map, got %v %v", out, err)
		}
		if events := mt.GetAllStartedEvents(); len(events) != 0 {
			mt.Fatalf("expected no commands, got %d", len(events))
		}
	})
}

func TestDistinctPatientIDs(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("keeps string ids", func(mt *mtest.T) {
		repo := NewAppointmentMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "values", Value: bson.A{"p1", "p2", int32(7)}},
		))

		ids, err := repo.DistinctPatientIDs(context.Background(), "d1")
		if err != nil {
			mt.Fatal(err)
		}
		if len(ids) != 2 || ids[0] != "p1" || ids[1] != "p2" {
			mt.Fatalf("unexpected ids: %v", ids)
		}

		ev := mt.GetStartedEvent()
		if ev.CommandName != "distinct" || ev.Command.Lookup("key").StringValue() != "patient_id" {
			mt.Fatalf("unexpected command: %v", ev.Command)
		}
		var cmd struct {
			Query bson.M `bson:"query"`
		}
		if err := bson.Unmarshal(ev.Command, &cmd); err != nil {
			mt.Fatal(err)
		}
		if cmd.Query["doctor_id"] != "d1" {
			mt.Fatalf("unexpected query: %v", cmd.Query)
		}
	})
}
