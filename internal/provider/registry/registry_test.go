package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiai/lumi-router/internal/domain"
	"github.com/lumiai/lumi-router/internal/provider/registry"
)

// stubAdapter is a minimal domain.Provider for registry tests.
type stubAdapter struct {
	id string
}

func (s *stubAdapter) Send(_ context.Context, _ *domain.SendRequest) (*domain.Completion, error) {
	return &domain.Completion{}, nil
}

func (s *stubAdapter) ID() string {
	return s.id
}

func groqDescriptor() domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:          "groq",
		DisplayName: "Groq",
		Models: []domain.ModelDescriptor{
			{ID: "llama-3.1-8b-instant", DisplayName: "Llama 3.1 8B", ContextLength: 32768},
			{ID: "llama-3.1-70b-versatile", DisplayName: "Llama 3.1 70B", ContextLength: 32768},
		},
	}
}

func TestRegister(t *testing.T) {
	t.Run("should register provider and index its models", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(groqDescriptor(), &stubAdapter{id: "groq"})
		require.NoError(t, err)

		desc, ok := reg.FindProvider("groq")
		require.True(t, ok)
		require.Equal(t, "Groq", desc.DisplayName)

		model, ok := reg.FindModel("llama-3.1-8b-instant")
		require.True(t, ok)
		require.Equal(t, 32768, model.ContextLength)

		adapter, ok := reg.Adapter("groq")
		require.True(t, ok)
		require.Equal(t, "groq", adapter.ID())
	})

	t.Run("should reject duplicate provider id", func(t *testing.T) {
		reg := registry.NewRegistry()

		require.NoError(t, reg.Register(groqDescriptor(), &stubAdapter{id: "groq"}))
		err := reg.Register(groqDescriptor(), &stubAdapter{id: "groq"})
		require.Error(t, err)
	})

	t.Run("should reject duplicate model id across providers", func(t *testing.T) {
		reg := registry.NewRegistry()
		require.NoError(t, reg.Register(groqDescriptor(), &stubAdapter{id: "groq"}))

		other := domain.ProviderDescriptor{
			ID:          "other",
			DisplayName: "Other",
			Models: []domain.ModelDescriptor{
				{ID: "llama-3.1-8b-instant"},
			},
		}
		err := reg.Register(other, &stubAdapter{id: "other"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "already registered")
	})

	t.Run("should reject mismatched adapter id", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(groqDescriptor(), &stubAdapter{id: "ollama"})
		require.Error(t, err)
	})

	t.Run("should reject nil adapter", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(groqDescriptor(), nil)
		require.Error(t, err)
	})
}

func TestFindModel_Idempotent(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(groqDescriptor(), &stubAdapter{id: "groq"}))

	first, ok := reg.FindModel("llama-3.1-70b-versatile")
	require.True(t, ok)
	second, ok := reg.FindModel("llama-3.1-70b-versatile")
	require.True(t, ok)
	require.Equal(t, first, second)
}

func TestFindModel_Unknown(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(groqDescriptor(), &stubAdapter{id: "groq"}))

	_, ok := reg.FindModel("gpt-99")
	require.False(t, ok)
}

func TestList_PreservesRegistrationOrder(t *testing.T) {
	reg := registry.NewRegistry()

	ollama := domain.ProviderDescriptor{
		ID:          "ollama",
		DisplayName: "Ollama",
		Models:      []domain.ModelDescriptor{{ID: "llama3"}},
	}
	require.NoError(t, reg.Register(ollama, &stubAdapter{id: "ollama"}))
	require.NoError(t, reg.Register(groqDescriptor(), &stubAdapter{id: "groq"}))

	descs := reg.List()
	require.Len(t, descs, 2)
	require.Equal(t, "ollama", descs[0].ID)
	require.Equal(t, "groq", descs[1].ID)
}

func TestReturnedDescriptorsDoNotAliasRegistryState(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(groqDescriptor(), &stubAdapter{id: "groq"}))

	listed := reg.List()
	require.Len(t, listed, 1)
	listed[0].Models[0].ID = "mutated"

	found, ok := reg.FindProvider("groq")
	require.True(t, ok)
	require.Equal(t, "llama-3.1-8b-instant", found.Models[0].ID,
		"mutating a listed descriptor must not change the catalogue")

	found.Models[1].DisplayName = "mutated"
	again, _ := reg.FindProvider("groq")
	require.Equal(t, "Llama 3.1 70B", again.Models[1].DisplayName)
}
