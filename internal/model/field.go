package model

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FieldDescriptor pairs a stable field name with the natural-language
// description handed to the extraction model.
type FieldDescriptor struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// FieldSet is an ordered collection of field descriptors. Order matters:
// it fixes prompt layout and reconciliation iteration order.
type FieldSet []FieldDescriptor

// Names returns the field names in set order.
func (fs FieldSet) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Contains reports whether the set tracks the given field name.
func (fs FieldSet) Contains(name string) bool {
	for _, f := range fs {
		if f.Name == name {
			return true
		}
	}
	return false
}

// DefaultFields returns the production field set for a merchant affiliation.
func DefaultFields() FieldSet {
	return FieldSet{
		{Name: "rut_comercio", Description: "El RUT que identifica el comercio o empresa que se afilia. DEBE contener guión (ejemplo '4.567.389-1' o '45768945-4')"},
		{Name: "razon_social", Description: "Nombre legal o razón social del comercio, asociado al RUT registrado"},
		{Name: "nombre_fantasia", Description: "Nombre de fantasía por el que el comercio es conocido"},
		{Name: "direccion_comercio", Description: "Dirección del comercio, con calle y número, y opcionalmente comuna y región (ej: 'Teatinos 500, Santiago, RM'). Si no hay calle o número la confianza es baja"},
		{Name: "actividad_economica", Description: "Actividad económica a la que se dedica la sociedad del comercio"},
		{Name: "nombre_contacto", Description: "Nombre del contacto principal relacionado a la afiliación del comercio"},
		{Name: "rut_contacto", Description: "RUT del contacto principal del comercio"},
		{Name: "num_serie", Description: "Número de serie del documento de identidad del contacto principal. Formato '111.111.111' o '111111111'. Puede contener letras pero NUNCA guiones"},
		{Name: "correo_contacto", Description: "Dirección de email asociada al contacto principal"},
		{Name: "telefono_contacto", Description: "Número de teléfono asociado al contacto principal"},
		{Name: "representante_legal", Description: "Representante legal del comercio o sociedad"},
		{Name: "constitucion", Description: "Accionistas del comercio y porcentaje de la operación que tengan"},
		{Name: "num_cuenta", Description: "Número de cuenta identificada para el comercio"},
		{Name: "tipo_cuenta", Description: "Tipo de la cuenta declarada por el comercio. Indicar sólo el tipo, omitir la palabra cuenta (ejemplo: 'ahorro' en vez de 'cuenta de ahorro' o 'cuenta ahorro')"},
		{Name: "banco", Description: "Banco al que pertenece la cuenta encontrada para el comercio"},
		{Name: "nombre_cuenta", Description: "Nombre del titular de la cuenta. Si no existe, asumir que es el representante legal, con confianza de 50"},
	}
}

// LoadFields reads a field set from a YAML file. An empty path falls back
// to DefaultFields.
func LoadFields(path string) (FieldSet, error) {
	if path == "" {
		return DefaultFields(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "model: read fields file %s", path)
	}

	var fs FieldSet
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, eris.Wrapf(err, "model: parse fields file %s", path)
	}
	if len(fs) == 0 {
		return nil, eris.Errorf("model: fields file %s defines no fields", path)
	}
	for _, f := range fs {
		if f.Name == "" {
			return nil, eris.Errorf("model: fields file %s contains a field without a name", path)
		}
	}
	return fs, nil
}
