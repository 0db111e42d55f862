package style

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// descriptor holds the fields of a style document the manager acts on.
type descriptor struct {
	DefaultTheme     string
	Stylesheet       string
	StylesheetOutput string
	Icon             string
	Resources        []string
	Palette          map[string]string
}

// DescriptorError reports a style document field with the wrong shape.
type DescriptorError struct {
	Field   string
	Message string
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("style descriptor %s: %s", e.Field, e.Message)
}

func parseDescriptor(name string, doc *structpb.Struct) (descriptor, error) {
	fields := doc.GetFields()
	var d descriptor
	var err error

	if d.DefaultTheme, err = stringField(fields, "default_theme"); err != nil {
		return d, err
	}
	if d.Stylesheet, err = stringField(fields, "stylesheet"); err != nil {
		return d, err
	}
	if d.StylesheetOutput, err = stringField(fields, "stylesheet_output"); err != nil {
		return d, err
	}
	if d.StylesheetOutput == "" {
		d.StylesheetOutput = name + ".css"
	}
	if d.Icon, err = stringField(fields, "icon"); err != nil {
		return d, err
	}

	if v, ok := fields["resources"]; ok {
		list, isList := v.GetKind().(*structpb.Value_ListValue)
		if !isList {
			return d, &DescriptorError{Field: "resources", Message: "must be a list of file names"}
		}
		seen := make(map[string]struct{})
		for i, item := range list.ListValue.GetValues() {
			s, isString := item.GetKind().(*structpb.Value_StringValue)
			if !isString || strings.TrimSpace(s.StringValue) == "" {
				return d, &DescriptorError{Field: fmt.Sprintf("resources[%d]", i), Message: "must be a non-empty string"}
			}
			if _, dup := seen[s.StringValue]; dup {
				return d, &DescriptorError{Field: fmt.Sprintf("resources[%d]", i), Message: fmt.Sprintf("duplicate resource %q", s.StringValue)}
			}
			seen[s.StringValue] = struct{}{}
			d.Resources = append(d.Resources, s.StringValue)
		}
	}

	if v, ok := fields["palette"]; ok {
		st, isStruct := v.GetKind().(*structpb.Value_StructValue)
		if !isStruct {
			return d, &DescriptorError{Field: "palette", Message: "must map palette roles to variable ids"}
		}
		d.Palette = make(map[string]string, len(st.StructValue.GetFields()))
		for role, id := range st.StructValue.GetFields() {
			s, isString := id.GetKind().(*structpb.Value_StringValue)
			if !isString {
				return d, &DescriptorError{Field: "palette." + role, Message: "must be a variable id"}
			}
			d.Palette[role] = s.StringValue
		}
	}

	return d, nil
}

func stringField(fields map[string]*structpb.Value, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return strings.TrimSpace(kind.StringValue), nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", &DescriptorError{Field: key, Message: "must be a string"}
	}
}
