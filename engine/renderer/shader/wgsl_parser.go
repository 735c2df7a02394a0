package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	// The type capture (.+) is greedy to handle parameterized types like array<T, N>.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// uniformDeclRegex captures group, binding, variable name, and type from declarations like:
	// @group(0) @binding(0) var<uniform> camera: CameraUniform;
	uniformDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var<\s*uniform\s*>\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseEntryPoint extracts the entry point function name for the given shader type
// from WGSL source. Returns an empty string if no matching entry point annotation is found.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - shaderType: the shader type to search for (ShaderTypeVertex or ShaderTypeFragment)
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, shaderType ShaderType) string {
	cleaned := stripComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseVertexInputs reflects the input signature of a vertex entry point. Parameters
// carrying @location are taken directly; a parameter typed as a struct contributes
// the struct's @location fields. Builtins are skipped. The result is sorted by location.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - entryPoint: the vertex entry point name
//
// Returns:
//   - []VertexInput: inputs sorted by location
//   - error: ErrUnsupportedType if an input type cannot be used as a vertex attribute
func parseVertexInputs(source, entryPoint string) ([]VertexInput, error) {
	cleaned := stripComments(source)
	params, ok := entryPointParams(cleaned, entryPoint)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEntryPoint, entryPoint)
	}

	structs := make(map[string]parsedStruct)
	for _, ps := range parseStructBlocks(cleaned) {
		structs[ps.name] = ps
	}

	var inputs []VertexInput
	for _, field := range parseStructFields(params) {
		if field.isBuiltin {
			continue
		}
		if field.location >= 0 {
			inputs = append(inputs, VertexInput{Location: uint32(field.location), Name: field.name, Type: field.typeName})
			continue
		}
		ps, ok := structs[field.typeName]
		if !ok {
			continue
		}
		for _, f := range ps.fields {
			if f.isBuiltin || f.location < 0 {
				continue
			}
			inputs = append(inputs, VertexInput{Location: uint32(f.location), Name: f.name, Type: f.typeName})
		}
	}

	for _, in := range inputs {
		if _, ok := wgslAttributeFormats[in.Type]; !ok {
			return nil, fmt.Errorf("%w: vertex input %q has type %s", ErrUnsupportedType, in.Name, in.Type)
		}
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Location < inputs[j].Location
	})
	return inputs, nil
}

// parseUniformBindings extracts all var<uniform> declarations from WGSL source and
// resolves the byte size of each bound type. The result is sorted by group then binding.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - []UniformBinding: the reflected uniform bindings
func parseUniformBindings(source string) []UniformBinding {
	cleaned := stripComments(source)
	structSizes := computeStructSizes(parseStructBlocks(cleaned))

	var bindings []UniformBinding
	for _, match := range uniformDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.ParseUint(match[1], 10, 32)
		binding, _ := strconv.ParseUint(match[2], 10, 32)
		typeName := strings.TrimSpace(match[4])

		ub := UniformBinding{
			Group:   uint32(group),
			Binding: uint32(binding),
			Name:    strings.TrimSpace(match[3]),
			Type:    typeName,
		}
		if layout, ok := resolveTypeLayout(typeName, structSizes); ok {
			ub.Size = layout.size
		}
		bindings = append(bindings, ub)
	}

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Group != bindings[j].Group {
			return bindings[i].Group < bindings[j].Group
		}
		return bindings[i].Binding < bindings[j].Binding
	})
	return bindings
}

// entryPointParams returns the text between the parentheses of fn entryPoint(...),
// honouring nested parentheses from attributes such as @location(0).
//
// Parameters:
//   - source: WGSL source with comments already stripped
//   - entryPoint: the function name
//
// Returns:
//   - string: the raw parameter list
//   - bool: false if the function or its closing parenthesis was not found
func entryPointParams(source, entryPoint string) (string, bool) {
	re := regexp.MustCompile(`\bfn\s+` + regexp.QuoteMeta(entryPoint) + `\s*\(`)
	loc := re.FindStringIndex(source)
	if loc == nil {
		return "", false
	}

	start := loc[1]
	depth := 1
	for i := start; i < len(source); i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return source[start:i], true
			}
		}
	}
	return "", false
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields including @location and @builtin attributes
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses a comma separated field or parameter list, extracting
// @location and @builtin attributes along with the name and type
//
// Parameters:
//   - body: the content between { and } of a struct declaration, or a function parameter list
//
// Returns:
//   - []parsedField: all fields found in the body
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var field parsedField

		if builtinRegex.MatchString(line) {
			field.isBuiltin = true
		}

		field.location = -1
		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])

		fields = append(fields, field)
	}

	return fields
}
