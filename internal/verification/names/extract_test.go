package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_EmptyText(t *testing.T) {
	for _, kind := range []DocumentKind{KindIdentity, KindBilling} {
		t.Run(string(kind), func(t *testing.T) {
			name := Extract("", kind)
			assert.False(t, name.Found())
			assert.Equal(t, "", name.String())
		})
	}
}

func TestExtract_IdentityDocument(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		rule     string
	}{
		{
			name:     "labeled field ends at line break",
			text:     "Nome / Name: MARIA DA SILVA SANTOS\nCPF 123",
			expected: "Maria Da Silva Santos",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "label without slash and digit terminator",
			text:     "REPUBLICA FEDERATIVA DO BRASIL\nNome Name JOÃO CARLOS PEREIRA 12/03/1990",
			expected: "João Carlos Pereira",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "stops at field label on the same line",
			text:     "Nome/Name: ANA PAULA COSTA CPF 000.000.000-00",
			expected: "Ana Paula Costa",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "stops at sexo label",
			text:     "Nome / Name PEDRO ALVES Sexo M",
			expected: "Pedro Alves",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "strips social name continuation",
			text:     "Nome / Name: CARLOS EDUARDO LIMA Nome Social CARLA LIMA",
			expected: "Carlos Eduardo Lima",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "value on the next line",
			text:     "Nome / Name\nBEATRIZ SOUZA\nData de Nascimento 01/01/1990",
			expected: "Beatriz Souza",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "drops stop words and short tokens",
			text:     "Nome / Name: DOCUMENTO RG LUIZ XI FERREIRA\n",
			expected: "Luiz Ferreira",
			rule:     "identity_labeled_bounded",
		},
		{
			name:     "name only before social name label",
			text:     "NOME: RAFAEL GOMES NOME SOCIAL RAFA",
			expected: "Rafael Gomes",
			rule:     "identity_before_social_name",
		},
		{
			name:     "lowercase OCR output still matches",
			text:     "nome / name: fernanda rocha\n",
			expected: "Fernanda Rocha",
			rule:     "identity_labeled_bounded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, rule := NewExtractor().ExtractWithRule(tt.text, KindIdentity)
			assert.True(t, name.Found())
			assert.Equal(t, tt.expected, name.String())
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestExtract_IdentityNotFound(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no label", text: "MARIA DA SILVA SANTOS"},
		{name: "single token after filtering", text: "Nome / Name: MARIA\nCPF 123"},
		{name: "only boilerplate", text: "Nome / Name: REPUBLICA FEDERATIVA DO BRASIL"},
		{name: "particles do not count as name tokens", text: "Nome / Name: MARIA DA DOS\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Extract(tt.text, KindIdentity).Found())
		})
	}
}

func TestExtract_BillingDocument(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		rule     string
	}{
		{
			name:     "leading line",
			text:     "JOÃO PEREIRA\nRua das Flores 123\nVencimento 10/10/2024",
			expected: "João Pereira",
			rule:     "billing_leading_line",
		},
		{
			name:     "leading line cut at due date label",
			text:     "MARCOS VIEIRA Vencimento 10/10",
			expected: "Marcos Vieira",
			rule:     "billing_leading_line",
		},
		{
			name:     "skips boilerplate lines",
			text:     "FATURA\nVALOR\nLUCIA MENDES\n",
			expected: "Lucia Mendes",
			rule:     "billing_leading_line",
		},
		{
			name:     "holder label",
			text:     "0001 2345\nCliente: RENATA DUARTE 99",
			expected: "Renata Duarte",
			rule:     "billing_holder_label",
		},
		{
			name:     "accented beneficiary label",
			text:     "123\nBeneficiário: OTAVIO NUNES",
			expected: "Otavio Nunes",
			rule:     "billing_holder_label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, rule := NewExtractor().ExtractWithRule(tt.text, KindBilling)
			assert.Equal(t, tt.expected, name.String())
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestExtract_StopWordsIgnoreAccents(t *testing.T) {
	name := Extract("Nome / Name: ÓRGÃO EXPEDIÇÃO TERESA NEVES\n", KindIdentity)
	assert.Equal(t, "Teresa Neves", name.String())
}

func TestExtract_ExtraStopWords(t *testing.T) {
	text := "ENERGIA ELETRICA\nCliente: SERGIO BRAGA"

	assert.Equal(t, "Energia Eletrica", NewExtractor().Extract(text, KindBilling).String())
	assert.Equal(t, "Sergio Braga", NewExtractor("energia").Extract(text, KindBilling).String())
}

func TestExtract_UnknownKind(t *testing.T) {
	assert.False(t, Extract("Nome / Name: MARIA SILVA\n", DocumentKind("passport")).Found())
}

func TestParseDocumentKind(t *testing.T) {
	tests := []struct {
		input    string
		expected DocumentKind
		wantErr  bool
	}{
		{input: "identity", expected: KindIdentity},
		{input: " ID ", expected: KindIdentity},
		{input: "doc", expected: KindIdentity},
		{input: "billing", expected: KindBilling},
		{input: "Bill", expected: KindBilling},
		{input: "passport", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseDocumentKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownDocumentKind)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}
