// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestTurnConstructors(t *testing.T) {
	u := NewUserText("hi")
	if u.Role != RoleUser || u.Text != "hi" || u.ID == "" || u.IsImage() {
		t.Errorf("unexpected user turn: %+v", u)
	}

	img := NewUserImage("/tmp/work/page1.png")
	if !img.IsImage() || img.ImageName() != "page1.png" {
		t.Errorf("unexpected image turn: %+v", img)
	}

	a := NewAssistant("Harold: ok")
	if a.Role != RoleAssistant || a.Thinking {
		t.Errorf("unexpected assistant turn: %+v", a)
	}

	th := NewThinking()
	if !th.Thinking || th.Role != RoleAssistant {
		t.Errorf("unexpected thinking turn: %+v", th)
	}

	if u.ID == a.ID {
		t.Error("turn IDs must be unique")
	}
}

func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("user display = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != AssistantName {
		t.Errorf("assistant display = %q", RoleAssistant.DisplayName())
	}
	if Role("x").DisplayName() != "x" {
		t.Error("unknown roles display verbatim")
	}
}
