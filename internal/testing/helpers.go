// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file (and its parent directories) under root.
// Fails the test on any I/O error.
//
// Example:
//
//	root := t.TempDir()
//	testing.WriteFile(t, root, "src/controller/UserController.java", src)
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture file %s: %v", rel, err)
	}
	return full
}

// SpringController is a minimal Spring Boot controller fixture with a
// class-level base path, three verb markers, and one secured method.
const SpringController = `package com.example.demo.controller;

import org.springframework.web.bind.annotation.*;
import org.springframework.security.access.prepost.PreAuthorize;

@RestController
@RequestMapping("/api/users")
public class UserController {

    @GetMapping
    public List<User> listUsers() {
        return service.findAll();
    }

    @PostMapping("/create")
    public User createUser(@RequestBody User user) {
        return service.save(user);
    }

    @PreAuthorize("hasRole('ADMIN')")
    @DeleteMapping("/{id}")
    public void deleteUser(@PathVariable Long id) {
        service.delete(id);
    }
}
`

// SpringModel is a minimal JPA entity fixture with five field declarations.
const SpringModel = `package com.example.demo.model;

import javax.persistence.*;

@Entity
public class User {

    @Id
    @GeneratedValue(strategy = GenerationType.IDENTITY)
    private Long id;

    @Column(nullable = false)
    private String name;

    private String email;

    private Boolean active;

    private LocalDate createdAt;
}
`

// SpringService is a minimal service fixture; services are recorded by
// existence only, so the body is irrelevant.
const SpringService = `package com.example.demo.service;

import org.springframework.stereotype.Service;

@Service
public class UserService {
    public List<User> findAll() { return repository.findAll(); }
}
`

// VueView is a minimal single-file component fixture.
const VueView = `<template>
  <div class="dashboard">{{ title }}</div>
</template>

<script>
export default {
  name: 'Dashboard',
  data() {
    return { title: 'Dashboard' }
  }
}
</script>
`

// ExpressRouter is a minimal Express router fixture with three route
// registrations, one of them guarded by an auth middleware.
const ExpressRouter = `const express = require('express');
const router = express.Router();
const { requireAuth } = require('../middleware/auth');

router.get('/orders', async (req, res) => {
  res.json(await Order.findAll());
});

router.post('/orders', requireAuth, async (req, res) => {
  res.status(201).json(await Order.create(req.body));
});

router.delete('/orders/:id', async (req, res) => {
  await Order.destroy(req.params.id);
  res.status(204).end();
});

module.exports = router;
`

// FlaskApp is a minimal Flask fixture with two decorated routes.
const FlaskApp = `from flask import Flask, jsonify
from flask_login import login_required

app = Flask(__name__)


@app.route("/reports", methods=["GET"])
def list_reports():
    return jsonify(reports)


@login_required
@app.route("/reports", methods=["POST"])
def create_report():
    return jsonify({}), 201
`

// ScaffoldSpringProject creates a conventional Spring Boot source tree in a
// fresh temp directory and returns its root.
//
// Layout:
//
//	src/main/java/com/example/demo/controller/UserController.java
//	src/main/java/com/example/demo/model/User.java
//	src/main/java/com/example/demo/service/UserService.java
//	frontend/src/views/Dashboard.vue
//	README.md
func ScaffoldSpringProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	WriteFile(t, root, "src/main/java/com/example/demo/controller/UserController.java", SpringController)
	WriteFile(t, root, "src/main/java/com/example/demo/model/User.java", SpringModel)
	WriteFile(t, root, "src/main/java/com/example/demo/service/UserService.java", SpringService)
	WriteFile(t, root, "frontend/src/views/Dashboard.vue", VueView)
	WriteFile(t, root, "README.md", "# Demo\n\n## Features\n\n- Manage user accounts\n- Track orders\n")
	return root
}

// ScaffoldExpressProject creates a conventional Express source tree in a
// fresh temp directory and returns its root.
func ScaffoldExpressProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	WriteFile(t, root, "src/api/orders.routes.js", ExpressRouter)
	WriteFile(t, root, "src/models/order.model.js", "class Order {\n  id;\n  total;\n}\nmodule.exports = Order;\n")
	WriteFile(t, root, "src/services/order.service.js", "module.exports = { findAll() { return []; } };\n")
	WriteFile(t, root, "src/pages/Orders.jsx", "export default function Orders() { return null; }\n")
	return root
}
