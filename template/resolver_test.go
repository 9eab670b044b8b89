package template

import (
	"testing"
	"time"

	"github.com/tidyfile/tidy/models"
)

func testFile(name, ext string) *models.FileInfo {
	full := name
	if ext != "" {
		full = name + "." + ext
	}
	return &models.FileInfo{
		Path:       "/photos/" + full,
		Name:       name,
		Extension:  ext,
		FullName:   full,
		Category:   models.CategoryForExtension(ext),
		ModifiedAt: time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
	}
}

func testRuleSet() *RuleSet {
	return &RuleSet{
		Templates: []models.Template{
			{ID: "tpl-default", Name: "Default", Pattern: "{date}-{name}", IsDefault: true},
			{ID: "tpl-camera", Name: "Camera", Pattern: "{camera}-{date}-{name}"},
			{ID: "tpl-doc", Name: "Docs", Pattern: "{title}"},
		},
		MetadataRules: []models.MetadataPatternRule{
			{
				ID: "mr-1", Name: "canon shots", Field: "image.cameraMake",
				Operator: models.OperatorEquals, Value: "Canon",
				Priority: 10, TemplateID: "tpl-camera", Enabled: true,
			},
		},
		FilenameRules: []models.FilenamePatternRule{
			{
				ID: "fr-1", Name: "screenshots", Pattern: "screenshot*",
				Priority: 20, TemplateID: "tpl-doc", Enabled: true,
			},
		},
	}
}

func TestResolveMetadataRuleWins(t *testing.T) {
	rs := testRuleSet()
	meta := &models.UnifiedMetadata{Image: &models.ImageMetadata{CameraMake: "Canon"}}

	res := Resolve(testFile("IMG_0001", "jpg"), meta, rs)
	if res.Fallback != FallbackNone {
		t.Fatalf("unexpected fallback: %s", res.Fallback)
	}
	if res.Template == nil || res.Template.ID != "tpl-camera" {
		t.Errorf("expected tpl-camera, got %+v", res.Template)
	}
	if res.MatchedRule == nil || res.MatchedRule.RuleID != "mr-1" || res.MatchedRule.Kind != "metadata" {
		t.Errorf("unexpected matched rule: %+v", res.MatchedRule)
	}
}

func TestResolveFilenameRule(t *testing.T) {
	rs := testRuleSet()
	res := Resolve(testFile("screenshot 2024", "png"), nil, rs)
	if res.Template == nil || res.Template.ID != "tpl-doc" {
		t.Fatalf("expected tpl-doc, got %+v", res)
	}
	if res.MatchedRule.Kind != "filename" {
		t.Errorf("unexpected rule kind: %s", res.MatchedRule.Kind)
	}
}

func TestResolveNoMatch(t *testing.T) {
	rs := testRuleSet()
	res := Resolve(testFile("notes", "txt"), nil, rs)
	if res.Fallback != FallbackNoMatch {
		t.Errorf("expected no-match, got %q", res.Fallback)
	}
	if res.Template != nil {
		t.Errorf("no template expected on no-match")
	}
}

func TestResolveTemplateNotFound(t *testing.T) {
	rs := testRuleSet()
	rs.FilenameRules[0].TemplateID = "gone"
	res := Resolve(testFile("screenshot 2024", "png"), nil, rs)
	if res.Fallback != FallbackTemplateNotFound {
		t.Fatalf("expected template-not-found, got %q", res.Fallback)
	}
	if res.MatchedRule == nil || res.MatchedRule.RuleID != "fr-1" {
		t.Errorf("diagnostic rule missing: %+v", res.MatchedRule)
	}
}

func TestResolveSkipsTemplateForOtherFileTypes(t *testing.T) {
	rs := testRuleSet()
	rs.Templates[2].FileTypes = []string{"pdf", ".docx"}

	// the screenshot rule matches, but its template is documents-only; the
	// png must fall through to the default instead
	res := Resolve(testFile("screenshot 2024", "png"), nil, rs)
	if res.Fallback != FallbackNoMatch {
		t.Errorf("expected fall-through past inapplicable template, got %+v", res)
	}

	res = Resolve(testFile("screenshot scan", "pdf"), nil, rs)
	if res.Template == nil || res.Template.ID != "tpl-doc" {
		t.Errorf("pdf should use tpl-doc, got %+v", res.Template)
	}

	// dotted configured file types still match dot-less extensions
	res = Resolve(testFile("screenshot memo", "docx"), nil, rs)
	if res.Template == nil || res.Template.ID != "tpl-doc" {
		t.Errorf("docx should use tpl-doc, got %+v", res.Template)
	}
}

func TestResolveDisabledRuleSkipped(t *testing.T) {
	rs := testRuleSet()
	rs.FilenameRules[0].Enabled = false
	res := Resolve(testFile("screenshot 2024", "png"), nil, rs)
	if res.Fallback != FallbackNoMatch {
		t.Errorf("disabled rule must not match, got %+v", res)
	}
}

func TestResolvePriorityModes(t *testing.T) {
	rs := testRuleSet()
	// both rules match this file
	rs.FilenameRules[0].Pattern = "img*"
	meta := &models.UnifiedMetadata{Image: &models.ImageMetadata{CameraMake: "Canon"}}
	file := testFile("IMG_0001", "jpg")

	rs.PriorityMode = models.PriorityFilenameFirst
	if res := Resolve(file, meta, rs); res.Template.ID != "tpl-doc" {
		t.Errorf("filename-first: got %s", res.Template.ID)
	}

	rs.PriorityMode = models.PriorityMetadataFirst
	if res := Resolve(file, meta, rs); res.Template.ID != "tpl-camera" {
		t.Errorf("metadata-first: got %s", res.Template.ID)
	}

	// combined: metadata rule has lower priority number, wins
	rs.PriorityMode = models.PriorityCombined
	if res := Resolve(file, meta, rs); res.Template.ID != "tpl-camera" {
		t.Errorf("combined: got %s", res.Template.ID)
	}

	// flip priorities; filename rule should now win in combined mode
	rs.MetadataRules[0].Priority = 30
	if res := Resolve(file, meta, rs); res.Template.ID != "tpl-doc" {
		t.Errorf("combined after flip: got %s", res.Template.ID)
	}
}

func TestDefaultTemplate(t *testing.T) {
	rs := testRuleSet()
	tpl, ok := rs.DefaultTemplate()
	if !ok || tpl.ID != "tpl-default" {
		t.Fatalf("expected tpl-default, got %+v ok=%v", tpl, ok)
	}

	rs.Templates[1].IsDefault = true
	if _, ok := rs.DefaultTemplate(); ok {
		t.Errorf("two defaults must be invalid")
	}

	rs.Templates[0].IsDefault = false
	rs.Templates[1].IsDefault = false
	if _, ok := rs.DefaultTemplate(); ok {
		t.Errorf("zero defaults must be invalid")
	}
}
