package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
	if GetCatalog("") != base {
		t.Fatal("expected empty locale to resolve to en-US catalog")
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

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestBuiltinMessages(t *testing.T) {
	tests := []struct {
		locale string
		code   Code
		meta   map[string]string
		want   string
	}{
		{BaseLocale, CodeInvalidCredentials, nil, "Invalid email or password"},
		{BaseLocale, CodeInvalidSignupData, nil, "Invalid signup data"},
		{BaseLocale, CodeTicketInvalidStatus, map[string]string{"Status": "done"}, "Invalid status value: done"},
		{"pt-BR", CodeTicketTitleEmpty, nil, "O título é obrigatório"},
	}
	for _, tc := range tests {
		if got := GetCatalog(tc.locale).Format(tc.code, tc.meta); got != tc.want {
			t.Fatalf("Format(%s, %s) = %q, want %q", tc.locale, tc.code, got, tc.want)
		}
	}
}

func TestEveryLocaleCoversBaseCodes(t *testing.T) {
	base := builtinMessages[BaseLocale]
	for locale, messages := range builtinMessages {
		for code := range base {
			if _, ok := messages[code]; !ok {
				t.Fatalf("locale %s missing message for %s", locale, code)
			}
		}
	}
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", BaseLocale},
		{"pt-BR,pt;q=0.9", "pt-BR"},
		{"en-GB,en;q=0.8", BaseLocale},
		{"ja-JP", BaseLocale},
		{"not a header;;;", BaseLocale},
	}
	for _, tc := range tests {
		if got := MatchLocale(tc.header); got != tc.want {
			t.Fatalf("MatchLocale(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
