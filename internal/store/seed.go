package store

import (
	"time"

	"wikispace/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MockSpaces returns the built-in demo spaces. Each call returns a fresh slice.
func MockSpaces() []model.Space {
	return []model.Space{
		{
			ID:          "space-1",
			Name:        "Engineering",
			Description: "Technical documentation and architecture decisions",
			Icon:        "💻",
			Color:       "#6366f1",
			CreatedAt:   day(2024, 1, 15),
			UpdatedAt:   day(2024, 12, 1),
		},
		{
			ID:          "space-2",
			Name:        "Product",
			Description: "Product roadmaps, specs, and feature documentation",
			Icon:        "🚀",
			Color:       "#8b5cf6",
			CreatedAt:   day(2024, 2, 1),
			UpdatedAt:   day(2024, 11, 28),
		},
		{
			ID:          "space-3",
			Name:        "Design",
			Description: "Design system, guidelines, and assets",
			Icon:        "🎨",
			Color:       "#ec4899",
			CreatedAt:   day(2024, 3, 10),
			UpdatedAt:   day(2024, 11, 30),
		},
		{
			ID:          "space-4",
			Name:        "Company",
			Description: "Company policies, culture, and announcements",
			Icon:        "🏢",
			Color:       "#22c55e",
			CreatedAt:   day(2024, 1, 1),
			UpdatedAt:   day(2024, 12, 2),
		},
	}
}

// MockPages returns the built-in demo pages, in seed order.
func MockPages() []model.Page {
	return []model.Page{
		{
			ID:         "page-1",
			SpaceID:    "space-1",
			ParentID:   nil,
			Title:      "Getting Started",
			Content:    `<h1>Getting Started with Development</h1>
<p>Welcome to the engineering documentation! This guide will help you set up your development environment.</p>
<h2>Prerequisites</h2>
<ul>
<li>Node.js 18+ installed</li>
<li>Git configured with SSH keys</li>
<li>Docker Desktop running</li>
</ul>
<h2>Quick Start</h2>
<p>Clone the repository and run the setup script:</p>
<pre><code>git clone git@github.com:company/app.git
cd app
npm install
npm run dev</code></pre>
<p>You should now have the app running at <code>http://localhost:3000</code>.</p>`,
			Emoji:      "🚀",
			CreatedAt:  day(2024, 1, 15),
			UpdatedAt:  day(2024, 11, 20),
			IsFavorite: true,
		},
		{
			ID:         "page-2",
			SpaceID:    "space-1",
			ParentID:   nil,
			Title:      "Architecture Overview",
			Content:    `<h1>System Architecture</h1>
<p>Our application follows a modern microservices architecture with the following key components:</p>
<h2>Frontend</h2>
<p>Built with Next.js 14 using the App Router for optimal performance and SEO.</p>
<h2>Backend Services</h2>
<ul>
<li><strong>API Gateway</strong> - Handles authentication and routing</li>
<li><strong>User Service</strong> - Manages user accounts and profiles</li>
<li><strong>Content Service</strong> - Handles all content operations</li>
<li><strong>Search Service</strong> - Elasticsearch-powered search</li>
</ul>
<blockquote><p>All services communicate via gRPC for internal calls and REST for external APIs.</p></blockquote>`,
			Emoji:      "🏗️",
			CreatedAt:  day(2024, 2, 1),
			UpdatedAt:  day(2024, 11, 15),
			IsFavorite: false,
		},
		{
			ID:         "page-3",
			SpaceID:    "space-1",
			ParentID:   model.StringPtr("page-2"),
			Title:      "Database Schema",
			Content:    `<h1>Database Schema</h1>
<p>We use PostgreSQL as our primary database with the following key tables:</p>
<h2>Users Table</h2>
<p>Stores all user information including authentication data.</p>
<h2>Spaces Table</h2>
<p>Contains workspace/space configurations and metadata.</p>
<h2>Pages Table</h2>
<p>Hierarchical content storage with full-text search indexes.</p>`,
			Emoji:      "🗄️",
			CreatedAt:  day(2024, 2, 10),
			UpdatedAt:  day(2024, 10, 5),
			IsFavorite: false,
		},
		{
			ID:         "page-4",
			SpaceID:    "space-1",
			ParentID:   model.StringPtr("page-2"),
			Title:      "API Documentation",
			Content:    `<h1>API Documentation</h1>
<p>Our REST API follows OpenAPI 3.0 specification.</p>
<h2>Authentication</h2>
<p>All requests require a Bearer token in the Authorization header.</p>
<h2>Rate Limiting</h2>
<p>API calls are limited to 1000 requests per minute per user.</p>`,
			Emoji:      "📡",
			CreatedAt:  day(2024, 3, 1),
			UpdatedAt:  day(2024, 11, 1),
			IsFavorite: true,
		},
		{
			ID:         "page-5",
			SpaceID:    "space-1",
			ParentID:   nil,
			Title:      "Deployment Guide",
			Content:    `<h1>Deployment Guide</h1>
<p>This document covers our CI/CD pipeline and deployment procedures.</p>
<h2>Environments</h2>
<ul>
<li><strong>Development</strong> - Auto-deployed on PR merge</li>
<li><strong>Staging</strong> - Manual promotion from development</li>
<li><strong>Production</strong> - Requires approval from 2+ engineers</li>
</ul>`,
			Emoji:      "🚢",
			CreatedAt:  day(2024, 4, 1),
			UpdatedAt:  day(2024, 12, 1),
			IsFavorite: false,
		},
		{
			ID:         "page-6",
			SpaceID:    "space-2",
			ParentID:   nil,
			Title:      "2025 Roadmap",
			Content:    `<h1>Product Roadmap 2025</h1>
<p>Our strategic priorities for the upcoming year.</p>
<h2>Q1 Goals</h2>
<ul>
<li>Launch real-time collaboration</li>
<li>Mobile app beta release</li>
<li>Enterprise SSO integration</li>
</ul>
<h2>Q2 Goals</h2>
<ul>
<li>AI-powered search</li>
<li>Advanced analytics dashboard</li>
<li>API v2 release</li>
</ul>`,
			Emoji:      "🗺️",
			CreatedAt:  day(2024, 11, 1),
			UpdatedAt:  day(2024, 12, 2),
			IsFavorite: true,
		},
		{
			ID:         "page-7",
			SpaceID:    "space-2",
			ParentID:   nil,
			Title:      "Feature Specifications",
			Content:    `<h1>Feature Specifications</h1>
<p>Detailed specifications for upcoming features.</p>`,
			Emoji:      "📋",
			CreatedAt:  day(2024, 10, 1),
			UpdatedAt:  day(2024, 11, 15),
			IsFavorite: false,
		},
		{
			ID:         "page-8",
			SpaceID:    "space-2",
			ParentID:   model.StringPtr("page-7"),
			Title:      "Real-time Collaboration",
			Content:    `<h1>Real-time Collaboration Spec</h1>
<p>Enable multiple users to edit the same document simultaneously.</p>
<h2>Requirements</h2>
<ul>
<li>Cursor presence indicators</li>
<li>Conflict resolution via CRDTs</li>
<li>Sub-100ms sync latency</li>
</ul>`,
			Emoji:      "👥",
			CreatedAt:  day(2024, 10, 15),
			UpdatedAt:  day(2024, 11, 20),
			IsFavorite: false,
		},
		{
			ID:         "page-9",
			SpaceID:    "space-3",
			ParentID:   nil,
			Title:      "Design System",
			Content:    `<h1>Design System</h1>
<p>Our comprehensive design system for consistent UI/UX across all products.</p>
<h2>Principles</h2>
<ul>
<li><strong>Clarity</strong> - Clear visual hierarchy</li>
<li><strong>Efficiency</strong> - Minimize cognitive load</li>
<li><strong>Delight</strong> - Thoughtful micro-interactions</li>
</ul>`,
			Emoji:      "🎨",
			CreatedAt:  day(2024, 3, 15),
			UpdatedAt:  day(2024, 11, 28),
			IsFavorite: true,
		},
		{
			ID:         "page-10",
			SpaceID:    "space-3",
			ParentID:   model.StringPtr("page-9"),
			Title:      "Color Palette",
			Content:    `<h1>Color Palette</h1>
<p>Our color system is designed for accessibility and visual harmony.</p>
<h2>Primary Colors</h2>
<p>Indigo and Violet gradients for brand identity.</p>
<h2>Semantic Colors</h2>
<p>Success (green), Warning (amber), Error (red).</p>`,
			Emoji:      "🌈",
			CreatedAt:  day(2024, 3, 20),
			UpdatedAt:  day(2024, 10, 1),
			IsFavorite: false,
		},
		{
			ID:         "page-11",
			SpaceID:    "space-3",
			ParentID:   model.StringPtr("page-9"),
			Title:      "Typography",
			Content:    `<h1>Typography Guidelines</h1>
<p>We use Inter as our primary font family.</p>
<h2>Scale</h2>
<ul>
<li>Display: 48px / 700</li>
<li>H1: 36px / 700</li>
<li>H2: 28px / 600</li>
<li>Body: 16px / 400</li>
<li>Small: 14px / 400</li>
</ul>`,
			Emoji:      "🔤",
			CreatedAt:  day(2024, 3, 25),
			UpdatedAt:  day(2024, 9, 15),
			IsFavorite: false,
		},
		{
			ID:         "page-12",
			SpaceID:    "space-4",
			ParentID:   nil,
			Title:      "Company Handbook",
			Content:    `<h1>Company Handbook</h1>
<p>Welcome to our company! This handbook contains everything you need to know.</p>
<h2>Our Mission</h2>
<p>To make knowledge sharing effortless and delightful for teams everywhere.</p>
<h2>Our Values</h2>
<ul>
<li><strong>Transparency</strong> - Open communication always</li>
<li><strong>Ownership</strong> - Take initiative and responsibility</li>
<li><strong>Craft</strong> - Pride in quality work</li>
<li><strong>Empathy</strong> - Understand before being understood</li>
</ul>`,
			Emoji:      "📖",
			CreatedAt:  day(2024, 1, 1),
			UpdatedAt:  day(2024, 12, 1),
			IsFavorite: false,
		},
		{
			ID:         "page-13",
			SpaceID:    "space-4",
			ParentID:   model.StringPtr("page-12"),
			Title:      "Benefits & Perks",
			Content:    `<h1>Benefits & Perks</h1>
<p>We offer competitive benefits to support our team.</p>
<h2>Health</h2>
<ul>
<li>Full medical, dental, and vision coverage</li>
<li>Mental health support</li>
<li>Wellness stipend</li>
</ul>
<h2>Time Off</h2>
<ul>
<li>Unlimited PTO</li>
<li>Paid parental leave</li>
<li>Company holidays</li>
</ul>`,
			Emoji:      "🎁",
			CreatedAt:  day(2024, 1, 5),
			UpdatedAt:  day(2024, 6, 1),
			IsFavorite: false,
		},
		{
			ID:         "page-14",
			SpaceID:    "space-4",
			ParentID:   nil,
			Title:      "Team Directory",
			Content:    `<h1>Team Directory</h1>
<p>Find and connect with your colleagues.</p>
<h2>Leadership</h2>
<p>CEO, CTO, VP Engineering, VP Product, VP Design</p>
<h2>Engineering</h2>
<p>Frontend, Backend, Platform, DevOps teams</p>
<h2>Product & Design</h2>
<p>Product Managers, Designers, User Researchers</p>`,
			Emoji:      "👋",
			CreatedAt:  day(2024, 1, 10),
			UpdatedAt:  day(2024, 11, 1),
			IsFavorite: false,
		},
	}
}
