package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if fallback := GetCatalog("missing-locale"); fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if empty := GetCatalog(""); empty != base {
		t.Fatal("expected empty locale to select en-US catalog")
	}
}

func TestGetCatalogMatchesAcceptLanguage(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "pt-BR", want: "pt-BR"},
		{locale: "pt", want: "pt-BR"},
		{locale: "pt-PT;q=0.9, en;q=0.5", want: "pt-BR"},
		{locale: "en-GB", want: "en-US"},
		{locale: "ja-JP", want: "en-US"},
	}
	for _, tc := range tests {
		if got := GetCatalog(tc.locale).Locale(); got != tc.want {
			t.Fatalf("GetCatalog(%q) locale = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestCatalogsCoverSameCodes(t *testing.T) {
	for code := range enUSCatalog.messages {
		if _, ok := ptBRCatalog.messages[code]; !ok {
			t.Fatalf("pt-BR catalog missing %s", code)
		}
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTicketMetadata(t *testing.T) {
	got := GetCatalog("en-US").Format(CodePaymentMismatch, map[string]string{"Paid": "9", "Price": "10"})
	if got != "Payment of 9 does not match the price of 10" {
		t.Fatalf("formatted message = %q", got)
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
