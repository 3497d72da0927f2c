package docstore_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"govportal/internal/docstore"
	"govportal/pkg/platform/sentinel"
)

// contractSuite exercises the Store contract; each backend embeds it.
type contractSuite struct {
	suite.Suite
	store      docstore.Store
	ctx        context.Context
	collection string
}

func (s *contractSuite) SetupTest() {
	s.ctx = context.Background()
	s.collection = "cases_" + uuid.NewString()[:8]
}

func (s *contractSuite) TestCreateAndGet() {
	s.Run("stores and returns the document", func() {
		doc := docstore.Document{"trackingId": "APP1700000000000", "status": "submitted", "count": 3}
		s.Require().NoError(s.store.Create(s.ctx, s.collection, "c-1", doc))

		got, err := s.store.Get(s.ctx, s.collection, "c-1")
		s.Require().NoError(err)
		s.Equal("APP1700000000000", got["trackingId"])
		s.Equal(float64(3), got["count"])
	})

	s.Run("create never overwrites", func() {
		err := s.store.Create(s.ctx, s.collection, "c-1", docstore.Document{"status": "approved"})
		s.ErrorIs(err, sentinel.ErrConflict)

		got, err := s.store.Get(s.ctx, s.collection, "c-1")
		s.Require().NoError(err)
		s.Equal("submitted", got["status"])
	})

	s.Run("missing document is not found", func() {
		_, err := s.store.Get(s.ctx, s.collection, "missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("collections are isolated", func() {
		_, err := s.store.Get(s.ctx, s.collection+"_other", "c-1")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *contractSuite) TestQuery() {
	s.Require().NoError(s.store.Create(s.ctx, s.collection, "a", docstore.Document{"userId": "u-1", "n": 1}))
	s.Require().NoError(s.store.Create(s.ctx, s.collection, "b", docstore.Document{"userId": "u-2", "n": 2}))
	s.Require().NoError(s.store.Create(s.ctx, s.collection, "c", docstore.Document{"userId": "u-1", "n": 3}))

	s.Run("returns every match oldest first", func() {
		docs, err := s.store.Query(s.ctx, s.collection, "userId", "u-1")
		s.Require().NoError(err)
		s.Require().Len(docs, 2)
		s.Equal(float64(1), docs[0]["n"])
		s.Equal(float64(3), docs[1]["n"])
	})

	s.Run("numeric values match", func() {
		docs, err := s.store.Query(s.ctx, s.collection, "n", 2)
		s.Require().NoError(err)
		s.Require().Len(docs, 1)
		s.Equal("u-2", docs[0]["userId"])
	})

	s.Run("no match is an empty slice", func() {
		docs, err := s.store.Query(s.ctx, s.collection, "userId", "nobody")
		s.Require().NoError(err)
		s.NotNil(docs)
		s.Empty(docs)
	})
}

func (s *contractSuite) TestUpdate() {
	s.Require().NoError(s.store.Create(s.ctx, s.collection, "c-1", docstore.Document{
		"status":  "submitted",
		"userId":  "u-1",
		"history": []any{"a"},
	}))

	s.Run("merges only the given fields", func() {
		err := s.store.Update(s.ctx, s.collection, "c-1", docstore.Document{
			"status":  "verified",
			"history": []any{"a", "b"},
		})
		s.Require().NoError(err)

		got, err := s.store.Get(s.ctx, s.collection, "c-1")
		s.Require().NoError(err)
		s.Equal("verified", got["status"])
		s.Equal("u-1", got["userId"])
		s.Equal([]any{"a", "b"}, got["history"])
	})

	s.Run("missing document is not found", func() {
		err := s.store.Update(s.ctx, s.collection, "missing", docstore.Document{"status": "x"})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *contractSuite) TestReplace() {
	s.Run("creates when absent", func() {
		s.Require().NoError(s.store.Replace(s.ctx, s.collection, "p-1", docstore.Document{"name": "Asha", "age": 30}))
		got, err := s.store.Get(s.ctx, s.collection, "p-1")
		s.Require().NoError(err)
		s.Equal("Asha", got["name"])
	})

	s.Run("overwrites every field", func() {
		s.Require().NoError(s.store.Replace(s.ctx, s.collection, "p-1", docstore.Document{"name": "Asha K"}))
		got, err := s.store.Get(s.ctx, s.collection, "p-1")
		s.Require().NoError(err)
		s.Equal("Asha K", got["name"])
		_, hasAge := got["age"]
		s.False(hasAge)
	})
}

func (s *contractSuite) TestDeleteAndList() {
	for _, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.store.Create(s.ctx, s.collection, id, docstore.Document{"id": id}))
		// created_at ordering needs distinct timestamps on fast backends
		time.Sleep(time.Millisecond)
	}

	s.Require().NoError(s.store.Delete(s.ctx, s.collection, "b"))
	s.ErrorIs(s.store.Delete(s.ctx, s.collection, "b"), sentinel.ErrNotFound)

	docs, err := s.store.List(s.ctx, s.collection)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal("a", docs[0]["id"])
	s.Equal("c", docs[1]["id"])

	empty, err := s.store.List(s.ctx, s.collection+"_empty")
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}
