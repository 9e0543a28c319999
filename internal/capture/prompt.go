package capture

import (
	"fmt"
	"strings"

	"github.com/pagoandino/capture-cli/internal/model"
)

const extractionPromptHeader = `Eres un asistente de extracción de información.

Vas a recibir 2 entradas:
1) Un documento que captura información relevante de una afiliación de comercio.
2) Un diccionario de campos (field descriptions) para extraer. Cada campo del diccionario contiene un nombre y la explicación de lo que hay que extraer.

Por cada campo DEBES determinar si el documento contiene o no la información buscada.

Retorna un diccionario JSON cuyas claves son nombres de campo y cuyos valores son objetos con la estructura de abajo.
DEBE existir un objeto con exactamente estos atributos en todos los casos, incluso para campos no encontrados:
{
    "match": boolean,
    "value": string | null,
    "explanation": string | null,
    "confidence": int (0-100) | null
}

Rules:
- match=true only if the field is **explicitly present** in the document.
- If match=false, then set value=null, explanation=null, confidence=null.
- explanation must reference **where** or **how** the model inferred the value
  (e.g., "Found in line about business owner: 'Razon social:...'").
- confidence is 0-100. Use higher confidence when text is direct and explicit.
- If a parameter has "rut" in the name, express the value without '.' in it, no matter how it comes
  (e.g. if it is '10.345.678-2', express it as '10345678-2').
- 'num_serie' must also be expressed with no '.' in it (e.g., instead of '123.456.789', express it as '123456789').
- If inferred but not explicit, match=true but confidence must be <70 and explanation must state inference.
- DO NOT hallucinate values not suggested in the text.
- If not all conditions for a value are present, confidence must be <70.
- Answer only JSON. No prose outside JSON.

Field descriptions:`

// BuildExtractionPrompt renders the instruction prompt for one extraction
// call over the given field subset.
func BuildExtractionPrompt(fields model.FieldSet) string {
	var b strings.Builder
	b.WriteString(extractionPromptHeader)
	b.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "- %s: %s\n", f.Name, f.Description)
	}
	return b.String()
}
