// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the transcript's data types.
//
// A Turn is one rendered entry: a user's text, a user's image, an assistant
// reply or the transient thinking placeholder. Every turn carries a unique ID
// so the placeholder can be removed once the reply arrives.
//
//	turn := model.NewUserText("what is 3/4 of 20?")
//	fmt.Println(turn.Role.DisplayName(), turn.Text)
package model
