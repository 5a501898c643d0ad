package library

import "testing"

func TestExtractTitleStrategies(t *testing.T) {
	tests := []struct {
		name     string
		head     string
		filename string
		typ      DocType
		want     string
	}{
		{
			name:     "legal heading",
			head:     "REPÚBLICA DE COLOMBIA\n\nLEY ESTATUTARIA 1581 DE 2012\n\nPor la cual se dictan disposiciones",
			filename: "ley_1581_2012",
			typ:      TypeLey,
			want:     "LEY ESTATUTARIA 1581 DE 2012",
		},
		{
			name:     "conpes inline label",
			head:     "Documento\n\nCONPES 3995\n\nConsejo Nacional de Política Económica y Social",
			filename: "conpes_3995",
			typ:      TypeConpes,
			want:     "CONPES 3995",
		},
		{
			name:     "conpes number on next line",
			head:     "Documento\n\nCONPES\n\n3995\n\nPolítica Nacional de Confianza",
			filename: "conpes_3995",
			typ:      TypeConpes,
			want:     "CONPES 3995",
		},
		{
			name:     "resolution phrase",
			head:     "MINISTERIO DE TECNOLOGÍAS\n\nRESOLUCIÓN NÚMERO 500 DE 2021\n\nPor la cual",
			filename: "resolucion_500_2021",
			typ:      TypeResolucion,
			want:     "RESOLUCIÓN NÚMERO 500 DE 2021",
		},
		{
			name:     "resolution bare number with year",
			head:     "00500 del 10 de marzo de 2021\n\nPor la cual se establecen lineamientos",
			filename: "resolucion_500_2021",
			typ:      TypeResolucion,
			want:     "Resolución 00500 del 10 de marzo de 2021",
		},
		{
			name:     "number year line",
			head:     "Norma técnica 1234 del año 2019 sobre seguridad\n\nContenido",
			filename: "otros_doc",
			typ:      TypeOtros,
			want:     "Norma técnica 1234 del año 2019 sobre seguridad",
		},
		{
			name:     "filename fallback",
			head:     "Texto sin encabezado reconocible.\n\nMás texto.",
			filename: "manual_de_politicas-internas",
			typ:      TypeOtros,
			want:     "Manual De Politicas Internas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTitle(tt.head, tt.filename, tt.typ)
			if got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConpesStrategyOnlyForConpesType(t *testing.T) {
	head := "CONPES 3995\n\nContenido"
	got := extractTitle(head, "ley_conpes_like", TypeLey)
	if got == "CONPES 3995" {
		t.Error("conpes strategy must not fire for non-conpes folders")
	}
}

func TestResolutionStrategyOnlyForResolucionType(t *testing.T) {
	head := "00500 del 10 de marzo de 2021\n\nContenido"
	got := extractTitle(head, "decreto_x", TypeDecreto)
	if got == "Resolución 00500 del 10 de marzo de 2021" {
		t.Error("resolution strategy must not fire for non-resolution folders")
	}
}

func TestLegalHeadingWindowLimit(t *testing.T) {
	var head string
	for i := 0; i < 25; i++ {
		head += "línea de relleno sin patrón\n"
	}
	head += "LEY 1581 DE 2012\n"

	got := extractTitle(head, "archivo", TypeLey)
	if got == "LEY 1581 DE 2012" {
		t.Error("heading past the line window must not match")
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ley_1581_2012", "Ley 1581 2012"},
		{"circular-externa-002", "Circular Externa 002"},
		{"documento", "Documento"},
	}
	for _, tt := range tests {
		if got := titleFromFilename(tt.in); got != tt.want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
