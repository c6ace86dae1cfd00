package lsp

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const fixAllTitle = "Fix all pinelint issues"

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions offers the fixer output as one whole-document edit: a
// quick fix attached to the pinelint diagnostics in view, and a
// source.fixAll.pinelint action for fix-on-save.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}

	uri := params.TextDocument.URI
	doc := s.documents.Get(uri)
	if doc == nil || !s.lintable(uri) {
		return actions
	}

	wantQuickFix := wantsKind(params.Context.Only, CodeActionKindQuickFix)
	wantFixAll := wantsKind(params.Context.Only, CodeActionKindPinelintFixAll)
	if !wantQuickFix && !wantFixAll {
		return actions
	}

	edits, err := s.fixEdits(doc)
	if err != nil {
		s.logger.Warn("fix failed", slog.String("uri", uri), slog.Any("error", err))
		return actions
	}
	if len(edits) == 0 {
		return actions
	}
	edit := &WorkspaceEdit{Changes: map[string][]TextEdit{uri: edits}}

	var ours []Diagnostic
	for _, d := range params.Context.Diagnostics {
		if d.Source == diagnosticSource {
			ours = append(ours, d)
		}
	}

	if wantQuickFix && len(ours) > 0 {
		actions = append(actions, CodeAction{
			Title:       fixAllTitle,
			Kind:        CodeActionKindQuickFix,
			Diagnostics: ours,
			IsPreferred: true,
			Edit:        edit,
		})
	}
	if wantFixAll {
		actions = append(actions, CodeAction{
			Title: fixAllTitle,
			Kind:  CodeActionKindPinelintFixAll,
			Edit:  edit,
		})
	}
	return actions
}

// handleFormatting answers textDocument/formatting with the fixer output.
func (s *Server) handleFormatting(msg *JSONRPCMessage) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	uri := params.TextDocument.URI
	doc := s.documents.Get(uri)
	if doc == nil || !s.lintable(uri) {
		s.sendResponse(msg.ID, []TextEdit{}, nil)
		return nil
	}

	edits, err := s.fixEdits(doc)
	if err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInternalError, Message: err.Error()})
		return err
	}
	s.sendResponse(msg.ID, edits, nil)
	return nil
}

// fixEdits runs the fixer and returns a single edit replacing the whole
// document, or no edits when the text is already compliant.
func (s *Server) fixEdits(doc *Document) ([]TextEdit, error) {
	res, err := s.fixer.Fix(doc.Content)
	if err != nil {
		return nil, err
	}
	if !res.Changed {
		return []TextEdit{}, nil
	}
	return []TextEdit{{Range: doc.FullRange(), NewText: res.Text}}, nil
}

// wantsKind reports whether kind is selected by the client's only filter.
// Kinds are hierarchical: "source" selects "source.fixAll.pinelint".
func wantsKind(only []CodeActionKind, kind CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if kind == o || strings.HasPrefix(string(kind), string(o)+".") {
			return true
		}
	}
	return false
}
